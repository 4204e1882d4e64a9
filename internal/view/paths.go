// Package view discovers dataset and narrative files in a build directory
// and serves them over HTTP.
package view

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Suffixes of dataset sidecar files (and Augur node-data files) that should
// not be listed as datasets themselves.
var sidecarSuffixes = []string{
	"meta",
	"tree",
	"root-sequence",
	"seq",
	"sequences",
	"tip-frequencies",
	"measurements",
	"entropy",
}

// Narrative files that are documentation, not narratives.
var excludedNarratives = map[string]bool{
	"README.md":         true,
	"group-overview.md": true,
}

// Build describes a scanned build directory: where datasets and narratives
// live on disk and the URL paths they are served under.
type Build struct {
	Dir          string
	DatasetDir   string
	NarrativeDir string

	// Datasets and Narratives are URL paths, each list sorted
	// case-insensitively.
	Datasets   []string
	Narratives []string
}

// Paths returns all available URL paths, datasets first.
func (b *Build) Paths() []string {
	paths := make([]string, 0, len(b.Datasets)+len(b.Narratives))
	paths = append(paths, b.Datasets...)
	paths = append(paths, b.Narratives...)
	return paths
}

// DefaultPath returns the single available path when there is exactly one,
// otherwise the empty string.
func (b *Build) DefaultPath() string {
	if paths := b.Paths(); len(paths) == 1 {
		return paths[0]
	}
	return ""
}

// Scan inspects a build directory. Datasets are read from an auspice/
// subdirectory when one exists, otherwise from dir itself; narratives
// likewise from narratives/ or dir.
func Scan(dir string) (*Build, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data path %q does not exist: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %q is not a directory", dir)
	}

	b := &Build{
		Dir:          dir,
		DatasetDir:   dir,
		NarrativeDir: dir,
	}

	if sub := filepath.Join(dir, "auspice"); isDir(sub) {
		b.DatasetDir = sub
	}
	if sub := filepath.Join(dir, "narratives"); isDir(sub) {
		b.NarrativeDir = sub
	}

	if b.Datasets, err = DatasetPaths(b.DatasetDir); err != nil {
		return nil, err
	}
	if b.Narratives, err = NarrativePaths(b.NarrativeDir); err != nil {
		return nil, err
	}

	sortFold(b.Datasets)
	sortFold(b.Narratives)

	return b, nil
}

// DatasetPaths returns the URL paths of the datasets in dir.
//
// Two layouts are recognised: v2 datasets are any *.json that is not a
// sidecar file, and v1 datasets are *_tree.json files with a matching
// *_meta.json. Underscores in filenames map to slashes in URL paths.
func DatasetPaths(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool)

	for _, file := range files {
		name := filepath.Base(file)
		if isSidecar(name) {
			continue
		}
		stem := strings.TrimSuffix(name, ".json")
		paths[strings.ReplaceAll(stem, "_", "/")] = true
	}

	for _, file := range files {
		name := filepath.Base(file)
		if !strings.HasSuffix(name, "_tree.json") {
			continue
		}
		meta := strings.TrimSuffix(file, "_tree.json") + "_meta.json"
		if _, err := os.Stat(meta); err != nil {
			continue
		}
		stem := strings.TrimSuffix(name, "_tree.json")
		paths[strings.ReplaceAll(stem, "_", "/")] = true
	}

	return keys(paths), nil
}

// NarrativePaths returns the URL paths of the narratives in dir: every *.md
// file except README.md and group-overview.md, served under narratives/.
func NarrativePaths(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool)
	for _, file := range files {
		name := filepath.Base(file)
		if excludedNarratives[name] {
			continue
		}
		stem := strings.TrimSuffix(name, ".md")
		paths["narratives/"+strings.ReplaceAll(stem, "_", "/")] = true
	}

	return keys(paths), nil
}

func isSidecar(name string) bool {
	for _, suffix := range sidecarSuffixes {
		if strings.HasSuffix(name, "_"+suffix+".json") {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortFold(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
}
