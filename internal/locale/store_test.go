package locale

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.json")

	d := NewDictionary()
	d.Set("a", json.RawMessage(`"A"`))
	require.NoError(t, Save(path, d))
	assert.Equal(t, "{\n    \"a\": \"A\"\n}\n", readFile(t, path))

	// overwriting keeps the mode and leaves no temporary files behind
	require.NoError(t, os.Chmod(path, 0600))
	d.Set("b", json.RawMessage(`"B"`))
	require.NoError(t, Save(path, d))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "messages.json")
	err := Save(path, NewDictionary())
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestSaveAll_FailureLeavesEveryTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	en := filepath.Join(dir, "en.json")
	require.NoError(t, os.WriteFile(en, []byte(`{"a":"A","b":"B"}`), 0644))
	broken := filepath.Join(dir, "missing", "de.json")

	d := NewDictionary()
	d.Set("a", json.RawMessage(`"A"`))

	failed, err := SaveAll([]Write{{Path: en, Dict: d}, {Path: broken, Dict: d}})
	require.Error(t, err)
	assert.Equal(t, broken, failed)

	assert.Equal(t, `{"a":"A","b":"B"}`, readFile(t, en))
	assert.NoFileExists(t, broken)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are removed")
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()
	en := filepath.Join(dir, "en.json")
	de := filepath.Join(dir, "de.json")

	d := NewDictionary()
	d.Set("a", json.RawMessage(`"A"`))

	failed, err := SaveAll([]Write{{Path: en, Dict: d}, {Path: de, Dict: d}})
	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Equal(t, "{\n    \"a\": \"A\"\n}\n", readFile(t, en))
	assert.Equal(t, "{\n    \"a\": \"A\"\n}\n", readFile(t, de))
}

func TestBackupSession(t *testing.T) {
	dir := t.TempDir()
	enPath := filepath.Join(dir, "en", "messages.json")
	dePath := filepath.Join(dir, "de", "messages.json")
	for _, p := range []string{enPath, dePath} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(`{"lang": "`+filepath.Base(filepath.Dir(p))+`"}`), 0644))
	}

	session, err := NewBackupSession(filepath.Join(dir, ".renew-locales-backup"))
	require.NoError(t, err)
	assert.NoDirExists(t, session.Dir(), "session directory is created lazily")

	enCopy, err := session.Save(enPath)
	require.NoError(t, err)
	deCopy, err := session.Save(dePath)
	require.NoError(t, err)

	assert.NotEqual(t, enCopy, deCopy)
	assert.True(t, strings.HasPrefix(enCopy, session.Dir()))
	assert.Equal(t, `{"lang": "en"}`, readFile(t, enCopy))
	assert.Equal(t, `{"lang": "de"}`, readFile(t, deCopy))

	missing, err := session.Save(filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestNewBackupSession_RequiresDirectory(t *testing.T) {
	_, err := NewBackupSession("")
	assert.Error(t, err)
}

func TestKeySet(t *testing.T) {
	a := NewKeySet("x", "y")
	b := NewKeySet("y", "z")

	u := Union(a, b)
	assert.Equal(t, []string{"x", "y", "z"}, u.Sorted())
	assert.Equal(t, []string{"x"}, a.Difference(b))
	assert.Empty(t, a.Difference(u))
}
