package dap

import (
	"regexp"
	"strings"
)

// Dialect identifies one of the supported textual patch encodings.
type Dialect int

const (
	DialectFenced Dialect = iota
	DialectLineCommand
	DialectSourceDest
	DialectUdiff
	DialectArrow
)

func (d Dialect) String() string {
	switch d {
	case DialectFenced:
		return "SEARCH/REPLACE block"
	case DialectLineCommand:
		return "DELETE/MOVE commands"
	case DialectSourceDest:
		return "Source/Dest block"
	case DialectUdiff:
		return "Unified diff"
	default:
		return "Arrow block"
	}
}

var (
	sourceDestMarker = regexp.MustCompile(`(?m)^>>>> `)
	udiffOldMarker   = regexp.MustCompile(`(?m)^--- `)
	udiffNewMarker   = regexp.MustCompile(`(?m)^\+\+\+ `)
	arrowMarker      = regexp.MustCompile(`(?m)^<<<< `)
)

// Detect inspects raw patch text and selects exactly one dialect by first
// match against the ordered marker predicates. Unrecognized text falls
// through to the arrow-block dialect, whose parser simply yields no edits.
func Detect(content string) Dialect {
	switch {
	case strings.Contains(content, markerSearchStart):
		return DialectFenced
	case strings.Contains(content, " "+markerDelete), strings.Contains(content, markerMove):
		return DialectLineCommand
	case sourceDestMarker.MatchString(content):
		return DialectSourceDest
	case udiffOldMarker.MatchString(content) && udiffNewMarker.MatchString(content):
		return DialectUdiff
	default:
		return DialectArrow
	}
}

// hasDialectMarker reports whether content carries any marker that the
// detector would act on. Used to decide whether markdown unwrapping found
// actual patch text.
func hasDialectMarker(content string) bool {
	if strings.Contains(content, markerSearchStart) ||
		strings.Contains(content, " "+markerDelete) ||
		strings.Contains(content, markerMove) {
		return true
	}
	if sourceDestMarker.MatchString(content) || arrowMarker.MatchString(content) {
		return true
	}
	return udiffOldMarker.MatchString(content) && udiffNewMarker.MatchString(content)
}
