package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultVideoExt    = ".mp4"
	defaultSubtitleExt = ".srt"
)

// workspace is the private scratch directory for one job.
type workspace struct {
	dir string
}

func newWorkspace(root, jobID string) (*workspace, error) {
	if root == "" {
		root = os.TempDir()
	}
	prefix := "submerge-"
	if jobID != "" {
		prefix += shortID(jobID) + "-"
	}
	dir, err := os.MkdirTemp(root, prefix)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	return &workspace{dir: abs}, nil
}

func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *workspace) write(name string, data []byte) (string, error) {
	path := w.path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

func (w *workspace) remove() error {
	return os.RemoveAll(w.dir)
}

// inputExt returns the lowercased extension of name, or fallback when it has none.
func inputExt(name, fallback string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if ext == "" || ext == "." {
		return fallback
	}
	return ext
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
