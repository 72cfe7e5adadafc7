// Package usage finds which translation keys a source tree refers to.
//
// A key is used when it occurs anywhere in a scanned file as a literal, case-sensitive
// substring. There is no tokenizing: "name" is used by a file containing "short_name".
package usage

import (
	"context"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/locale"
)

// Filter returns the keys that occur in content, in the order they were given.
func Filter(keys []string, content string) []string {
	var found []string
	for _, key := range keys {
		if strings.Contains(content, key) {
			found = append(found, key)
		}
	}
	return found
}

// Collect reads every file in paths and returns the union of the keys each of them uses.
// At most concurrency files are read at a time; a value below 1 means one per CPU.
// Every worker produces its own subset and the subsets are merged once all reads are done,
// so the result does not depend on scheduling. The first unreadable file aborts the run.
func Collect(ctx context.Context, paths []string, keys []string, concurrency int) (locale.KeySet, error) {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	subsets := make([]locale.KeySet, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return errors.ErrFailedToReadFile.WithArgs(path).Wrap(err)
			}

			subsets[i] = locale.NewKeySet(Filter(keys, string(content))...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return locale.Union(subsets...), nil
}
