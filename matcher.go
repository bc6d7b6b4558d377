package dap

import "strings"

// FindOccurrences locates searchBlock inside sourceLines and returns the
// starting indices of every occurrence plus the number of source lines a
// match spans. sourceLines carry their trailing newline.
//
// Three tiers are tried in order of decreasing strictness:
//
//  1. strict: exact line content, indentation included
//  2. trimmed: strict, after dropping blank lines framing the search block
//  3. loose: leading/trailing whitespace ignored on both sides
//
// The first tier that yields any match wins; the loose result is returned
// as-is even when empty.
func FindOccurrences(sourceLines []string, searchBlock string) ([]int, int) {
	srcStrict := make([]string, len(sourceLines))
	for i, l := range sourceLines {
		srcStrict[i] = strings.TrimRight(l, "\r\n")
	}

	searchStrict := splitLines(searchBlock)
	if matches := findSublist(srcStrict, searchStrict); len(matches) > 0 {
		return matches, len(searchStrict)
	}

	trimmedBlock := strings.Trim(searchBlock, "\r\n")
	searchTrimmed := splitLines(trimmedBlock)
	if trimmedBlock != searchBlock && len(searchTrimmed) > 0 {
		if matches := findSublist(srcStrict, searchTrimmed); len(matches) > 0 {
			return matches, len(searchTrimmed)
		}
	}

	srcLoose := make([]string, len(sourceLines))
	for i, l := range sourceLines {
		srcLoose[i] = strings.TrimSpace(l)
	}
	searchLoose := make([]string, len(searchTrimmed))
	for i, l := range searchTrimmed {
		searchLoose[i] = strings.TrimSpace(l)
	}
	if len(searchLoose) == 0 {
		return nil, 0
	}
	return findSublist(srcLoose, searchLoose), len(searchTrimmed)
}

// findOccurrencesNear behaves like FindOccurrences but, when the result is
// ambiguous and a line hint is given, keeps only the occurrence closest to
// the 1-based hint. A hint of zero targets the top of the file; a negative
// hint means no hint. Used by udiff hunks, whose @@ headers carry the
// expected position.
func findOccurrencesNear(sourceLines []string, searchBlock string, hint int) ([]int, int) {
	matches, length := FindOccurrences(sourceLines, searchBlock)
	if len(matches) <= 1 || hint < 0 {
		return matches, length
	}

	target := hint - 1
	if target < 0 {
		target = 0
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if abs(m-target) < abs(best-target) {
			best = m
		}
	}
	return []int{best}, length
}

func findSublist(full, sub []string) []int {
	var matches []int
	m := len(sub)
	if m == 0 {
		return nil
	}

	for i := 0; i+m <= len(full); i++ {
		found := true
		for j := 0; j < m; j++ {
			if full[i+j] != sub[j] {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, i)
		}
	}
	return matches
}

// splitLines splits s into lines without their line endings, like the
// source side of a readlines/strip pairing. An empty string yields nil.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitAfterLines splits s into lines that keep their trailing newline,
// mirroring split_inclusive semantics. The final fragment is kept even
// without a newline; an empty string yields nil.
func splitAfterLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
