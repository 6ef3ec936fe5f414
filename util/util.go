package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

func ToJson(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("ToJson error: %v", err)
		return ""
	}
	return string(b)
}

// Check whether a file (or dir) with name exists in file system.
// If it encounter an file system access error, return false,err
func FileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Map applies a function to each element of a slice and returns a new slice containing the results.
// If input is nil, the output will also be nil.
func Map[T1 any, T2 any](ss []T1, mapper func(T1) T2) (ret []T2) {
	for _, s := range ss {
		ret = append(ret, mapper(s))
	}
	return
}

// HasDuplicates checks if a slice contains duplicate elements.
func HasDuplicates[T comparable](s []T) bool {
	seen := make(map[T]struct{})
	for _, item := range s {
		if _, exists := seen[item]; exists {
			return true
		}
		seen[item] = struct{}{}
	}
	return false
}

// SplitList splits a comma-separated list, trimming spaces and dropping empty items.
// "a, b,,c" => ["a", "b", "c"].
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseIntList parses a comma-separated list of integers, e.g. "1400,1057,640".
func ParseIntList(s string) ([]int, error) {
	var ints []int
	for _, item := range SplitList(s) {
		i, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", item, err)
		}
		ints = append(ints, i)
	}
	return ints, nil
}

// Normalize a format name or file extension ("toml", ".yml", "JSON") to one of "toml", "yaml", "json".
// Return empty string if it's not a supported structured format.
func StructuredFormat(format string) string {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		return "toml"
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	}
	return ""
}

// Marshal a object to json / yaml / toml string according to format.
// format could be a file type or extension (e.g. "json" or ".json").
func Marshal(format string, input any) (data []byte, err error) {
	switch StructuredFormat(format) {
	case "json":
		return json.MarshalIndent(input, "", "  ")
	case "yaml":
		return yaml.Marshal(input)
	case "toml":
		return toml.Marshal(input)
	default:
		return nil, fmt.Errorf("Marshal: unsupported format %s", format)
	}
}
