package dap

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	udiffOldPrefix  = "--- "
	udiffNewPrefix  = "+++ "
	udiffHunkPrefix = "@@"
	devNull         = "/dev/null"
)

// parseUdiff handles unified diff input. Hunk lines are kept raw; the @@
// header contributes only the old-file start line, used later as a
// position hint for the matcher. File-level headers map onto edit kinds:
// /dev/null on the old side is a creation, on the new side a deletion,
// and differing paths become a move followed by the hunks.
func parseUdiff(content string) []Edit {
	var edits []Edit
	oldPath, newPath := "", ""
	var hunks []Hunk
	inDiff := false

	finalize := func() {
		edits = append(edits, finalizeUdiff(oldPath, newPath, hunks)...)
		hunks = nil
		newPath = ""
	}

	for _, line := range splitAfterLines(content) {
		stripped := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(stripped, udiffOldPrefix):
			if inDiff {
				finalize()
			}
			oldPath = strings.TrimSpace(strings.TrimPrefix(stripped, udiffOldPrefix))
			inDiff = true

		case !inDiff:
			// preamble before the first file header

		case strings.HasPrefix(stripped, udiffNewPrefix):
			newPath = strings.TrimSpace(strings.TrimPrefix(stripped, udiffNewPrefix))

		case strings.HasPrefix(stripped, udiffHunkPrefix):
			hunks = append(hunks, parseHunkHeader(stripped))

		case strings.HasPrefix(stripped, `\`):
			// "\ No newline at end of file"

		case len(hunks) > 0 && (strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") ||
			strings.HasPrefix(line, " ") || stripped == ""):
			hunks[len(hunks)-1].Lines = append(hunks[len(hunks)-1].Lines, line)

		case stripped == "":
			// blank line between file sections

		default:
			finalize()
			inDiff = false
		}
	}

	if inDiff {
		finalize()
	}
	return edits
}

func finalizeUdiff(oldPath, newPath string, hunks []Hunk) []Edit {
	if oldPath == "" {
		return nil
	}

	target := newPath
	if target == "" {
		target = oldPath
	}

	switch {
	case target == devNull:
		return []Edit{{Path: oldPath, Delete: true}}
	case oldPath == devNull:
		return []Edit{{Path: target, Hunks: hunks}}
	case oldPath != target:
		edits := []Edit{{Path: oldPath, MoveTo: target}}
		if len(hunks) > 0 {
			edits = append(edits, Edit{Path: target, Hunks: hunks})
		}
		return edits
	default:
		if len(hunks) == 0 {
			return nil
		}
		return []Edit{{Path: target, Hunks: hunks}}
	}
}

// parseHunkHeader extracts the old-file start line from an @@ header.
// Malformed or elided headers ("@@ ... @@") yield a start of zero, which
// disables the position hint rather than failing the hunk.
func parseHunkHeader(header string) Hunk {
	var hunk Hunk
	for _, part := range strings.Fields(header) {
		if !strings.HasPrefix(part, "-") || len(part) == 1 {
			continue
		}
		start := part[1:]
		if i := strings.IndexByte(start, ','); i >= 0 {
			start = start[:i]
		}
		if n, err := strconv.Atoi(start); err == nil {
			hunk.OldStart = n
			break
		}
	}
	return hunk
}

// applyHunks runs every hunk against content in order, locating each
// hunk's before-image with the matcher and splicing in the after-image.
// A running line offset keeps later hints honest as earlier hunks grow or
// shrink the file. The same routine backs both preflight simulation and
// the real apply; only the final write differs.
func applyHunks(content string, hunks []Hunk) (string, error) {
	current := content
	offset := 0

	for i, hunk := range hunks {
		var search, replace []string
		for _, raw := range hunk.Lines {
			body := "\n"
			if len(raw) > 1 {
				body = raw[1:]
			}
			switch {
			case strings.HasPrefix(raw, "-"):
				search = append(search, body)
			case strings.HasPrefix(raw, "+"):
				replace = append(replace, body)
			default:
				search = append(search, body)
				replace = append(replace, body)
			}
		}
		searchBlock := strings.Join(search, "")
		replaceBlock := strings.Join(replace, "")

		if searchBlock == "" && current == "" {
			current = replaceBlock
			continue
		}

		lines := splitAfterLines(current)
		hint := -1
		if hunk.OldStart > 0 {
			hint = hunk.OldStart + offset
			if hint < 0 {
				hint = 0
			}
		}

		matches, length := findOccurrencesNear(lines, searchBlock, hint)
		if len(matches) != 1 {
			return "", fmt.Errorf("hunk #%d expected 1 match, found %d", i+1, len(matches))
		}

		start := matches[0]
		replaceLines := splitAfterLines(replaceBlock)
		offset += len(replaceLines) - length

		spliced := make([]string, 0, len(lines)-length+len(replaceLines))
		spliced = append(spliced, lines[:start]...)
		spliced = append(spliced, replaceLines...)
		spliced = append(spliced, lines[start+length:]...)
		current = strings.Join(spliced, "")
	}

	return current, nil
}
