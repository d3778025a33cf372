package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Transform rewrites file contents while copying. name is slash separated and
// relative to the copied root.
type Transform func(name string, data []byte) ([]byte, error)

// WriteFile writes data to dst creating missing directories.
func WriteFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// CopyFS copies every regular file of fsys below dst preserving structure.
// A nil transform copies bytes unchanged.
func CopyFS(fsys fs.FS, dst string, transform Transform) error {
	return fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if transform != nil {
			if data, err = transform(name, data); err != nil {
				return fmt.Errorf("transform %s: %w", name, err)
			}
		}
		return WriteFile(target, data)
	})
}

// ReplaceDir moves staged into place at final. An existing final directory is
// rotated to final+".old" first and restored if the move fails.
func ReplaceDir(staged, final string) error {
	parent := filepath.Dir(final)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("ensure output parent: %w", err)
	}

	backupDir := final + ".old"
	if err := os.RemoveAll(backupDir); err != nil {
		return fmt.Errorf("clean backup dir: %w", err)
	}
	if err := os.Rename(final, backupDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotate old output: %w", err)
	}
	if err := os.Rename(staged, final); err != nil {
		_ = os.Rename(backupDir, final)
		return fmt.Errorf("activate new output: %w", err)
	}
	_ = os.RemoveAll(backupDir)
	return nil
}
