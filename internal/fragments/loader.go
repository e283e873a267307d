package fragments

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// BundleFile pairs a parsed bundle with its on-disk source.
type BundleFile struct {
	Bundle Bundle
	Path   string
}

// ParseBundleYAML decodes and validates a single bundle payload. The payload
// is the bundle mapping plus an `id` key naming the jurisdiction.
func ParseBundleYAML(data []byte) (Bundle, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Bundle{}, fmt.Errorf("fragments: bundle payload is empty")
	}
	var payload struct {
		ID     string `yaml:"id"`
		Bundle `yaml:",inline"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return Bundle{}, fmt.Errorf("fragments: decode bundle: %w", err)
	}
	bundle := payload.Bundle
	bundle.ID = payload.ID
	bundle = bundle.Normalized()
	if err := bundle.Validate(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// LoadBundleFile reads a YAML file from disk and returns the parsed bundle.
func LoadBundleFile(path string) (BundleFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return BundleFile{}, fmt.Errorf("fragments: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return BundleFile{}, fmt.Errorf("fragments: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return BundleFile{}, fmt.Errorf("fragments: read %s: %w", path, err)
	}
	bundle, err := ParseBundleYAML(data)
	if err != nil {
		return BundleFile{}, fmt.Errorf("fragments: %s: %w", path, err)
	}
	return BundleFile{Bundle: bundle, Path: filepath.Clean(path)}, nil
}

// LoadBundleDir scans a directory for *.yaml bundle files and returns the
// parsed bundles. Missing directories are treated as "no bundles" so a
// project without plugins needs no setup.
func LoadBundleDir(dir string) ([]BundleFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("fragments: read %s: %w", trimmed, err)
	}
	var files []BundleFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		file, err := LoadBundleFile(filepath.Join(trimmed, name))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
