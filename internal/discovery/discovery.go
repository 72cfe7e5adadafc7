// Package discovery finds the source files whose content is searched for translation keys.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/napalu/renew-locales/internal/errors"
)

// Matcher decides which paths are scanned. A file is scanned when its slash-separated path
// matches the include expression and no exclude pattern. Directories matching an exclude
// pattern are not descended into.
type Matcher struct {
	include *regexp.Regexp
	exclude []string
}

// NewMatcher compiles filesReg and validates the doublestar exclude patterns.
func NewMatcher(filesReg string, exclude []string) (*Matcher, error) {
	include, err := regexp.Compile(filesReg)
	if err != nil {
		return nil, errors.ErrInvalidFilesReg.WithArgs(filesReg).Wrap(err)
	}

	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.ErrInvalidExcludePattern.WithArgs(pattern)
		}
	}

	return &Matcher{
		include: include,
		exclude: exclude,
	}, nil
}

// Match reports whether the file at path, found below root, is scanned. root may be empty.
func (m *Matcher) Match(root, path string) bool {
	return m.include.MatchString(filepath.ToSlash(path)) && !m.Excluded(root, path)
}

// Excluded reports whether path matches one of the exclude patterns. Below a non-empty root the
// patterns are also tried against the root-relative path, so that "vendor/**" applies whatever
// the root is.
func (m *Matcher) Excluded(root, path string) bool {
	if len(m.exclude) == 0 {
		return false
	}

	candidates := []string{filepath.ToSlash(path)}
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}

	for _, pattern := range m.exclude {
		for _, candidate := range candidates {
			if ok, _ := doublestar.Match(pattern, candidate); ok {
				return true
			}
		}
	}
	return false
}

// Walk returns every file below root accepted by m. Symbolic links to directories are not
// followed. A directory that cannot be read aborts the walk.
func Walk(ctx context.Context, root string, m *Matcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.ErrFailedToReadDir.WithArgs(path).Wrap(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && m.Excluded(root, path) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return errors.ErrFailedToReadFile.WithArgs(path).Wrap(err)
			}
			if info.IsDir() {
				return nil
			}
		}

		if m.Match(root, path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Files walks every root concurrently and returns the union of the matched paths, cleaned,
// deduplicated and sorted. The first failing root cancels the others.
func Files(ctx context.Context, roots []string, m *Matcher) ([]string, error) {
	perRoot := make([][]string, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			files, err := Walk(gctx, root, m)
			if err != nil {
				return err
			}
			perRoot[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []string
	seen := make(map[string]bool)
	for _, files := range perRoot {
		for _, file := range files {
			file = filepath.Clean(file)
			if !seen[file] {
				seen[file] = true
				results = append(results, file)
			}
		}
	}
	sort.Strings(results)

	return results, nil
}

// ValidPattern reports whether pattern is a well-formed doublestar pattern.
func ValidPattern(pattern string) bool {
	return doublestar.ValidatePattern(filepath.ToSlash(pattern))
}

// Expand returns the files matched by the doublestar patterns, cleaned, deduplicated and
// sorted. A pattern matching nothing contributes nothing.
func Expand(patterns []string) ([]string, error) {
	var results []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.ErrFailedToExpandLocales.WithArgs(pattern).Wrap(err)
		}
		for _, match := range matches {
			match = filepath.Clean(match)
			if !seen[match] {
				seen[match] = true
				results = append(results, match)
			}
		}
	}
	sort.Strings(results)

	return results, nil
}
