package dap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapMarkdownLeavesRawPatchAlone(t *testing.T) {
	raw := "a.go\n<<<<<<< SEARCH\nx\n=======\ny\n>>>>>>> REPLACE\n"
	assert.Equal(t, raw, UnwrapMarkdown(raw))
}

func TestUnwrapMarkdownLeavesPlainProseAlone(t *testing.T) {
	prose := "Here is an explanation with no patch content at all.\n"
	assert.Equal(t, prose, UnwrapMarkdown(prose))
}

func TestUnwrapMarkdownExtractsIndentedFencedBlock(t *testing.T) {
	// The source/dest dialect needs its markers at line start; an
	// indented fence from a chat transcript hides them until unwrapped.
	doc := "Apply this change:\n\n" +
		"  ```\n" +
		"  >>>> src/c.go\n" +
		"  <<<<\n" +
		"  alpha\n" +
		"  ====\n" +
		"  beta\n" +
		"  >>>>\n" +
		"  ```\n"

	unwrapped := UnwrapMarkdown(doc)
	assert.NotEqual(t, doc, unwrapped)
	assert.True(t, strings.HasPrefix(unwrapped, ">>>> src/c.go"))

	edits := Parse(unwrapped)
	require.Len(t, edits, 1)
	assert.Equal(t, "src/c.go", edits[0].Path)
	assert.Equal(t, "alpha\n", edits[0].Search)
	assert.Equal(t, "beta\n", edits[0].Replace)
}

func TestExtractFencedBlocks(t *testing.T) {
	doc := "intro\n\n```go\nfunc main() {}\n```\n\noutro\n\n```\nsecond block\n```\n"

	blocks, err := extractFencedBlocks([]byte(doc))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "func main() {}\n", blocks[0])
	assert.Equal(t, "second block\n", blocks[1])
}
