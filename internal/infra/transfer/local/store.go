// Package local implements the transfer Store over the local filesystem.
// Remote paths are plain absolute paths; transfers are copies.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"pipestage/internal/transfer/core"
)

// Store copies files between local directories.
type Store struct{}

// New creates a local filesystem transfer store.
func New() *Store { return &Store{} }

func (s *Store) Driver() core.Driver { return core.DriverLocal }

func (s *Store) DownloadFiles(ctx context.Context, remote []string, destDir string) ([]string, error) {
	local := make([]string, 0, len(remote))
	for _, r := range remote {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := filepath.Join(destDir, filepath.Base(r))
		if err := copyFile(r, dest); err != nil {
			return nil, err
		}
		local = append(local, dest)
	}
	return local, nil
}

func (s *Store) DownloadFolder(ctx context.Context, remoteFolder, destDir string) (string, error) {
	if err := copyTree(ctx, remoteFolder, destDir); err != nil {
		return "", err
	}
	return destDir, nil
}

func (s *Store) UploadFolder(ctx context.Context, localDir, remoteFolder string) (string, error) {
	if err := copyTree(ctx, localDir, remoteFolder); err != nil {
		return "", err
	}
	return remoteFolder, nil
}

func (s *Store) ListFiles(ctx context.Context, folder string, include, exclude []core.Pattern) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if core.Selected(entry.Name(), include, exclude) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// copyTree copies the contents of src into dst, creating dst if needed.
func copyTree(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", src)
	}
	return filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

// copyFile copies one file via temp + rename so readers never observe a
// partial write.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
