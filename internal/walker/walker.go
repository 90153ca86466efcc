// Package walker discovers the file set a check run operates on.
// Discovery is the single source of truth for which files exist: it walks
// the target root once, skips version-control and dependency directories,
// and returns files in a stable sorted order so downstream output is
// reproducible.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

// defaultExcludes are directory names never descended into.
var defaultExcludes = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"vendor":       true,
	"__pycache__":  true,
}

// Options configures discovery.
type Options struct {
	// Exclude adds directory names to the default skip set.
	Exclude []string
	// IncludeHidden descends into dot-directories other than VCS ones.
	IncludeHidden bool
}

// Error records a non-fatal problem with one directory entry.
// Discovery continues past it.
type Error struct {
	Path    string
	Message string
}

// Result is the outcome of one discovery pass.
type Result struct {
	Root     string
	Files    []check.FileInfo
	Errors   []Error
	Duration time.Duration
}

// HasErrors returns true if any entries could not be read.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// Discover walks root and returns all regular files sorted by relative
// path. Per-entry errors are recorded in the result, not returned: one
// unreadable directory must not prevent checking the rest.
func Discover(root string, opts Options) (*Result, error) {
	start := time.Now()
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(defaultExcludes)+len(opts.Exclude))
	for name := range defaultExcludes {
		excluded[name] = true
	}
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	result := &Result{Root: absRoot}
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, Error{Path: path, Message: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if excluded[name] {
				return filepath.SkipDir
			}
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, Error{Path: path, Message: err.Error()})
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			result.Errors = append(result.Errors, Error{Path: path, Message: err.Error()})
			return nil
		}
		result.Files = append(result.Files, check.FileInfo{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})
	result.Duration = time.Since(start)
	return result, nil
}
