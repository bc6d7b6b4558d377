package dap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// SourceProvider supplies the raw patch text: an explicit file path wins,
// then piped stdin, then the system clipboard.
type SourceProvider struct {
	path string
}

func NewSourceProvider(path string) *SourceProvider {
	return &SourceProvider{path: path}
}

func (sp *SourceProvider) GetContent() (string, error) {
	if sp.path != "" {
		data, err := os.ReadFile(sp.path)
		if err != nil {
			return "", fmt.Errorf("could not read patch file '%s': %w", sp.path, err)
		}
		return string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		c, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(c), nil
	}

	c, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(c), nil
}
