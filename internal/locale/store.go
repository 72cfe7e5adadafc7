package locale

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Write is a dictionary waiting to be saved at Path.
type Write struct {
	Path string
	Dict *Dictionary
}

// Save writes d to path. The content is written to a temporary file next to path and renamed
// over it, so path either keeps its previous content or receives the complete new one.
// An existing file keeps its permissions.
func Save(path string, d *Dictionary) error {
	_, err := SaveAll([]Write{{Path: path, Dict: d}})
	return err
}

// SaveAll saves every dictionary of writes, or none of them when one cannot be prepared.
// Every dictionary is first written to a temporary file next to its target and the targets are
// only replaced once all temporary files are complete. On error, failed names the target the
// error relates to and the temporary files are removed.
func SaveAll(writes []Write) (failed string, err error) {
	staged := make([]string, 0, len(writes))
	defer func() {
		if err != nil {
			for _, tmp := range staged {
				_ = os.Remove(tmp)
			}
		}
	}()

	for _, w := range writes {
		tmp, stageErr := stage(w.Path, w.Dict)
		if stageErr != nil {
			return w.Path, stageErr
		}
		staged = append(staged, tmp)
	}

	for i, w := range writes {
		if err = os.Rename(staged[i], w.Path); err != nil {
			// only the temporary files not renamed yet are left to remove
			staged = staged[i:]
			return w.Path, err
		}
	}

	return "", nil
}

// stage writes d to a temporary file in the directory of path and returns its name.
func stage(path string, d *Dictionary) (name string, err error) {
	data, err := d.Marshal()
	if err != nil {
		return "", err
	}

	mode := fs.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return "", err
	}

	return tmp.Name(), nil
}

// BackupSession copies files into a session directory below a base directory before they are
// overwritten. The session directory is only created by the first Save.
type BackupSession struct {
	dir string
}

// NewBackupSession prepares a session named after the current time below baseDir.
func NewBackupSession(baseDir string) (*BackupSession, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("backup directory must be specified")
	}

	sessionName := fmt.Sprintf("session_%d", time.Now().UnixNano())
	return &BackupSession{dir: filepath.Join(baseDir, sessionName)}, nil
}

// Dir returns the session directory.
func (s *BackupSession) Dir() string {
	return s.dir
}

// Save copies path into the session and returns the copy's location. A path that does not
// exist yet has nothing to preserve and yields an empty location.
func (s *BackupSession) Save(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("creating session directory: %w", err)
	}

	dst := filepath.Join(s.dir, backupName(path))
	if err := copyFile(path, dst); err != nil {
		return "", err
	}

	return dst, nil
}

// backupName flattens path so that files sharing a base name, such as
// _locales/en/messages.json and _locales/de/messages.json, do not collide.
func backupName(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	clean = strings.TrimLeft(clean, "./")
	return strings.ReplaceAll(clean, "/", "__")
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
