package pathutil

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sagan/respimg/constants"
)

// Common temporary or system-generated files that are never conversion sources.
var IgnoreFilenames = []string{
	".DS_Store",   // macOS directory metadata
	"Thumbs.db",   // Windows thumbnail cache
	"desktop.ini", // Windows folder customization
}

// Return true if filename (without path) is hidden (dot-prefixed) or a known OS file.
// Hidden dirs are not descended into.
func ShouldIgnore(filename string) bool {
	return strings.HasPrefix(filename, ".") || slices.Contains(IgnoreFilenames, filename)
}

// Return the base name of p without dir and extension. "foo/bar/baz.tar.gz" => "baz.tar".
func BaseName(p string) string {
	name := filepath.Base(p)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Return the artifact filename of a source file at a width. "raw/photo.jpg", 640 => "photo@640w.webp".
func VariantFilename(source string, width int) string {
	return fmt.Sprintf("%s@%dw%s", BaseName(source), width, constants.OUTPUT_EXT)
}

// Return the artifact path of a source file at a width in the (flat) output dir.
func VariantPath(outputDir string, source string, width int) string {
	return filepath.Join(outputDir, VariantFilename(source, width))
}
