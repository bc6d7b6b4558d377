package dap

import "strings"

const (
	markerSearchStart = "<<<<<<< SEARCH"
	markerDivider     = "======="
	markerReplaceEnd  = ">>>>>>> REPLACE"
	markerDelete      = "<<<<<<< DELETE"
	markerMove        = "<<<<<<< MOVE >>>>>>>"
)

type parserState int

const (
	stateIdle parserState = iota
	stateInSearch
	stateInReplace
)

// Parse turns raw patch text into an ordered sequence of edits using the
// parser selected by Detect. Malformed or unterminated blocks are dropped
// silently; preflight is the integrity gate, not the parser.
func Parse(content string) []Edit {
	switch Detect(content) {
	case DialectFenced:
		return parseFenced(content)
	case DialectLineCommand:
		return parseLineCommands(content)
	case DialectSourceDest:
		return parseSourceDestBlocks(content)
	case DialectUdiff:
		return parseUdiff(content)
	default:
		return parseArrowBlocks(content)
	}
}

// parseFenced handles the SEARCH/REPLACE format:
//
//	file_path
//	<<<<<<< SEARCH
//	...
//	=======
//	...
//	>>>>>>> REPLACE
//
// The path is the last non-blank line before the SEARCH marker. Code fence
// lines are decorative and never become path candidates. Consecutive
// sections without a fresh path line reuse the previous path.
func parseFenced(content string) []Edit {
	var edits []Edit
	state := stateIdle
	previous := ""
	path := ""
	var search, replace []string

	for _, line := range splitAfterLines(content) {
		stripped := strings.TrimSpace(line)

		switch state {
		case stateIdle:
			switch {
			case stripped == markerSearchStart:
				if p := strings.TrimSpace(previous); p != "" {
					path = p
				}
				state = stateInSearch
				search, replace = nil, nil
			case strings.HasPrefix(stripped, "```"):
				// skip, keep the remembered path line
			case stripped == "":
				previous = ""
			default:
				previous = line
			}

		case stateInSearch:
			if stripped == markerDivider {
				state = stateInReplace
			} else {
				search = append(search, line)
			}

		case stateInReplace:
			if stripped == markerReplaceEnd {
				if path != "" {
					edits = append(edits, Edit{
						Path:    path,
						Search:  strings.Join(search, ""),
						Replace: strings.Join(replace, ""),
					})
				}
				state = stateIdle
				previous = ""
			} else {
				replace = append(replace, line)
			}
		}
	}
	return edits
}

// parseArrowBlocks handles the format:
//
//	<<<< file_path
//	search_content
//	====
//	replace_content
//	>>>>
func parseArrowBlocks(content string) []Edit {
	var edits []Edit
	state := stateIdle
	path := ""
	var search, replace []string

	for _, line := range splitAfterLines(content) {
		stripped := strings.TrimSpace(line)

		switch state {
		case stateIdle:
			if strings.HasPrefix(stripped, "<<<< ") && !strings.HasPrefix(stripped, "<<<<<<<") {
				path = strings.TrimSpace(stripped[5:])
				state = stateInSearch
				search, replace = nil, nil
			}

		case stateInSearch:
			if stripped == "====" {
				state = stateInReplace
			} else {
				search = append(search, line)
			}

		case stateInReplace:
			if stripped == ">>>>" {
				if path != "" {
					edits = append(edits, Edit{
						Path:    path,
						Search:  strings.Join(search, ""),
						Replace: strings.Join(replace, ""),
					})
				}
				state = stateIdle
			} else {
				replace = append(replace, line)
			}
		}
	}
	return edits
}

// parseSourceDestBlocks handles the format:
//
//	>>>> file_path
//	<<<<
//	search_content
//	====
//	replace_content
//	>>>>
//
// Several search/replace pairs may follow a single path declaration. A
// block start before any path declaration is ignored.
func parseSourceDestBlocks(content string) []Edit {
	var edits []Edit
	state := stateIdle
	path := ""
	var search, replace []string

	for _, line := range splitAfterLines(content) {
		stripped := strings.TrimSpace(line)

		switch state {
		case stateIdle:
			if strings.HasPrefix(stripped, ">>>> ") && !strings.HasPrefix(stripped, ">>>>>>>") {
				path = strings.TrimSpace(stripped[5:])
			} else if stripped == "<<<<" {
				if path == "" {
					continue
				}
				state = stateInSearch
				search, replace = nil, nil
			}

		case stateInSearch:
			if stripped == "====" {
				state = stateInReplace
			} else {
				search = append(search, line)
			}

		case stateInReplace:
			if stripped == ">>>>" {
				edits = append(edits, Edit{
					Path:    path,
					Search:  strings.Join(search, ""),
					Replace: strings.Join(replace, ""),
				})
				state = stateIdle
			} else {
				replace = append(replace, line)
			}
		}
	}
	return edits
}

// parseLineCommands handles self-contained one-line directives:
//
//	path/to/file <<<<<<< DELETE
//	old/path <<<<<<< MOVE >>>>>>> new/path
//
// No state machine is needed; each line is independent.
func parseLineCommands(content string) []Edit {
	var edits []Edit
	for _, line := range strings.Split(content, "\n") {
		if edit, ok := parseLineCommand(line); ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

func parseLineCommand(line string) (Edit, bool) {
	stripped := strings.TrimSpace(line)

	if strings.HasSuffix(stripped, markerDelete) {
		path := strings.TrimSpace(strings.TrimSuffix(stripped, markerDelete))
		if path != "" {
			return Edit{Path: path, Delete: true}, true
		}
		return Edit{}, false
	}

	if strings.Contains(stripped, markerMove) {
		parts := strings.SplitN(stripped, markerMove, 2)
		src := strings.TrimSpace(parts[0])
		dst := strings.TrimSpace(parts[1])
		if src != "" && dst != "" {
			return Edit{Path: src, MoveTo: dst}, true
		}
	}

	return Edit{}, false
}
