package dap

// Edit is a single intended file mutation extracted from patch text.
// Exactly one interpretation applies, checked in this order: Delete,
// MoveTo, Hunks, then search/replace (an empty Search means create or
// overwrite). Edits are never mutated after parsing.
type Edit struct {
	Path    string
	Search  string
	Replace string
	Delete  bool
	MoveTo  string
	Hunks   []Hunk
}

// Hunk is one unified-diff hunk. Lines keep their +/-/space prefix and
// trailing newline exactly as they appeared in the patch text.
type Hunk struct {
	OldStart int
	Lines    []string
}

type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Message   string
}
