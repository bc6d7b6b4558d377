package dap

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver anchors relative patch paths to the working directory the
// run started in, so later chdirs or goroutine-local state cannot shift
// targets between preflight and apply.
type PathResolver struct {
	wd string
}

func NewPathResolver() (*PathResolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current working directory: %w", err)
	}
	return &PathResolver{wd: wd}, nil
}

func (r *PathResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.wd, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeFileString writes content as the file's full contents, creating
// parent directories as needed.
func writeFileString(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func moveFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}
	return os.Rename(src, dst)
}
