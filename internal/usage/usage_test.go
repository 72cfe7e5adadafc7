package usage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/napalu/renew-locales/internal/errors"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		content string
		want    []string
	}{
		{
			name:    "string literals",
			keys:    []string{"a", "b", "c"},
			content: `reactTranslator.getMessage("a"); t("c")`,
			want:    []string{"a", "c"},
		},
		{
			name:    "inside longer identifiers",
			keys:    []string{"name", "short_name", "description"},
			content: `__MSG_short_name__`,
			want:    []string{"name", "short_name"},
		},
		{
			name:    "case sensitive",
			keys:    []string{"Filters", "filters"},
			content: `options_filters`,
			want:    []string{"filters"},
		},
		{
			name:    "no matches",
			keys:    []string{"a", "b"},
			content: `nothing here`,
			want:    nil,
		},
		{
			name:    "empty content",
			keys:    []string{"x"},
			content: ``,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.keys, tt.content))
		})
	}
}

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestCollect(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"one.js":   `getMessage("options_title")`,
		"two.html": `<span i18n="options_filters"></span>`,
		"three.js": `getMessage("options_title")`,
		"empty.js": ``,
	})

	keys := []string{"options_title", "options_filters", "options_unused"}

	for _, concurrency := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", concurrency), func(t *testing.T) {
			used, err := Collect(context.Background(), paths, keys, concurrency)
			require.NoError(t, err)
			assert.Equal(t, []string{"options_filters", "options_title"}, used.Sorted())
		})
	}
}

func TestCollect_NoFiles(t *testing.T) {
	used, err := Collect(context.Background(), nil, []string{"a"}, 2)
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestCollect_UnreadableFileAborts(t *testing.T) {
	dir, paths := writeFiles(t, map[string]string{"one.js": `"a"`})
	paths = append(paths, filepath.Join(dir, "gone.js"))

	used, err := Collect(context.Background(), paths, []string{"a"}, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFailedToReadFile))
	assert.Nil(t, used)
}

func TestCollect_Cancelled(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"one.js": `"a"`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, paths, []string{"a"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
