package dap

import (
	"fmt"
	"strings"
)

// PreflightResult is the outcome of checking a single edit against current
// filesystem state. Detail is a short human-readable reason.
type PreflightResult struct {
	Index  int
	Path   string
	OK     bool
	Detail string
}

// Preflight validates every edit in order against the filesystem without
// mutating anything. The batch passes only if every edit passes; callers
// must not apply any edit from a failing batch.
func Preflight(resolver *PathResolver, edits []Edit) (bool, []PreflightResult) {
	log := GetLogger("preflight")
	allOK := true

	results := make([]PreflightResult, 0, len(edits))
	for i, edit := range edits {
		result := checkEdit(resolver, edit)
		result.Index = i + 1
		result.Path = edit.Path
		if !result.OK {
			allOK = false
		}
		log.Debug().
			Int("patch", result.Index).
			Str("path", result.Path).
			Bool("ok", result.OK).
			Str("detail", result.Detail).
			Msg("Preflight check")
		results = append(results, result)
	}

	return allOK, results
}

func checkEdit(resolver *PathResolver, edit Edit) PreflightResult {
	path := resolver.Resolve(edit.Path)

	switch {
	case edit.Delete:
		if !fileExists(path) {
			return failed("File not found, cannot delete")
		}
		return passed("File scheduled for deletion")

	case edit.MoveTo != "":
		dst := resolver.Resolve(edit.MoveTo)
		if !fileExists(path) {
			return failed("Source file not found")
		}
		if fileExists(dst) {
			return failed(fmt.Sprintf("Destination file '%s' already exists", edit.MoveTo))
		}
		return passed(fmt.Sprintf("Move to '%s'", edit.MoveTo))

	case edit.Hunks != nil:
		return checkHunks(path, edit.Hunks)

	case strings.TrimSpace(edit.Search) == "":
		if !fileExists(path) {
			return passed("New file creation")
		}
		content, err := readFileString(path)
		if err != nil {
			return failed(fmt.Sprintf("Could not read existing file: %v", err))
		}
		if strings.TrimSpace(content) != "" {
			return failed("Search block is empty, but target file is not empty")
		}
		return passed("Overwrite empty file")

	default:
		if !fileExists(path) {
			return failed("File not found")
		}
		content, err := readFileString(path)
		if err != nil {
			return failed(fmt.Sprintf("Could not read file: %v", err))
		}

		matches, _ := FindOccurrences(splitAfterLines(content), edit.Search)
		switch len(matches) {
		case 0:
			return failed("Search block not found")
		case 1:
			return passed("")
		default:
			return failed(fmt.Sprintf("Search block is ambiguous, found %d times", len(matches)))
		}
	}
}

// checkHunks simulates the full hunk sequence in memory. A file that does
// not exist yet passes only when some hunk starts at line zero, the
// creation form emitted for /dev/null diffs.
func checkHunks(path string, hunks []Hunk) PreflightResult {
	if !fileExists(path) {
		for _, h := range hunks {
			if h.OldStart == 0 {
				return passed("New file creation via udiff")
			}
		}
		return failed("File not found")
	}

	if len(hunks) == 0 {
		return failed("Udiff patch contains no hunks")
	}

	content, err := readFileString(path)
	if err != nil {
		return failed(fmt.Sprintf("Could not read file: %v", err))
	}
	if _, err := applyHunks(content, hunks); err != nil {
		return failed(fmt.Sprintf("Udiff simulation failed: %v", err))
	}
	return passed("")
}

func passed(detail string) PreflightResult { return PreflightResult{OK: true, Detail: detail} }
func failed(detail string) PreflightResult { return PreflightResult{OK: false, Detail: detail} }
