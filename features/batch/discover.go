package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"

	"github.com/sagan/respimg/util"
	"github.com/sagan/respimg/util/pathutil"
)

// compilePattern returns a "*.{jpg,jpeg,png}" style glob matching lower-cased filenames of exts.
func compilePattern(exts []string) (glob.Glob, error) {
	if len(exts) == 0 {
		return nil, fmt.Errorf("no extensions")
	}
	pattern := "*.{" + strings.Join(exts, ",") + "}"
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid extensions pattern %q: %w", pattern, err)
	}
	return g, nil
}

// Discover walks dir recursively and returns the sorted paths of files whose extension
// (case-insensitive, no dot) is one of exts. Hidden files and dirs are skipped.
// A dir that does not exist yields no files and no error.
// Unreadable entries below dir are logged and skipped.
func Discover(dir string, exts []string) (files []string, err error) {
	g, err := compilePattern(exts)
	if err != nil {
		return nil, err
	}
	exists, err := util.FileExists(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access input dir: %w", err)
	}
	if !exists {
		log.Warnf("Input directory %q does not exist", dir)
		return nil, nil
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Warnf("Skip %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && pathutil.ShouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if pathutil.ShouldIgnore(d.Name()) {
			return nil
		}
		if g.Match(strings.ToLower(d.Name())) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking input dir: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// findBasenameCollisions returns, for each artifact basename shared by more than one source,
// the sources sharing it, in discovery order.
func findBasenameCollisions(sources []string) map[string][]string {
	byBase := map[string][]string{}
	for _, source := range sources {
		base := pathutil.BaseName(source)
		byBase[base] = append(byBase[base], source)
	}
	for base, list := range byBase {
		if len(list) < 2 {
			delete(byBase, base)
		}
	}
	return byBase
}
