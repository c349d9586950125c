package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the local filesystem and serves them through the
// static file route. Paths are generated by the caller and always live under
// baseDir.
type Local struct {
	baseDir    string
	staticBase string
}

func NewLocal(baseDir, staticBase string) *Local {
	return &Local{baseDir: baseDir, staticBase: staticBase}
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader, size int64) (string, error) {
	absPath := filepath.Join(l.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write blob: %w", err)
	}

	return l.staticBase + "/" + strings.TrimPrefix(path, "/"), nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	absPath := filepath.Join(l.baseDir, filepath.FromSlash(path))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// BaseDir exposes the root for the static file route.
func (l *Local) BaseDir() string { return l.baseDir }
