package dap

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// UnwrapMarkdown extracts patch text that arrives wrapped in a markdown
// document, the usual shape of a pasted chat reply. If the raw input
// already carries a dialect marker it is used untouched; otherwise the
// fenced code blocks are pulled out and their concatenation is used when
// it carries one. Anything else falls back to the raw input.
func UnwrapMarkdown(content string) string {
	if hasDialectMarker(content) {
		return content
	}

	blocks, err := extractFencedBlocks([]byte(content))
	if err != nil || len(blocks) == 0 {
		return content
	}

	joined := strings.Join(blocks, "")
	if hasDialectMarker(joined) {
		log := GetLogger("markdown")
		log.Debug().Int("blocks", len(blocks)).Msg("Unwrapped fenced code blocks")
		return joined
	}
	return content
}

func extractFencedBlocks(source []byte) ([]string, error) {
	var blocks []string
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		blocks = append(blocks, content.String())

		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return blocks, nil
}
