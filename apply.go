package dap

import (
	"fmt"
	"os"
	"strings"
)

// ApplyResult reports the outcome of applying one edit.
type ApplyResult struct {
	Index   int
	Path    string
	OK      bool
	Message string
}

// ApplyAll executes every edit in parse order. It must only run after a
// fully passing preflight. Individual failures are reported and counted,
// never escalated; edits applied earlier in the batch stay applied.
// onResult, when non-nil, is called once per edit as it completes.
func ApplyAll(resolver *PathResolver, edits []Edit, dryRun bool, onResult func(Edit, ApplyResult)) []ApplyResult {
	log := GetLogger("apply")

	results := make([]ApplyResult, 0, len(edits))
	for i, edit := range edits {
		message, err := applyEdit(resolver, edit, dryRun)
		result := ApplyResult{Index: i + 1, Path: edit.Path, OK: err == nil, Message: message}
		if err != nil {
			result.Message = err.Error()
			log.Error().Int("patch", result.Index).Str("path", edit.Path).Err(err).Msg("Apply failed")
		} else {
			log.Debug().Int("patch", result.Index).Str("path", edit.Path).Str("result", message).Msg("Applied")
		}
		if onResult != nil {
			onResult(edit, result)
		}
		results = append(results, result)
	}
	return results
}

// applyEdit performs a single edit. Replace edits re-read and re-match the
// file, because an earlier edit in the batch may have shifted its content
// since preflight.
func applyEdit(resolver *PathResolver, edit Edit, dryRun bool) (string, error) {
	path := resolver.Resolve(edit.Path)

	switch {
	case edit.Delete:
		if dryRun {
			return "[DRY RUN] File would be deleted.", nil
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("could not delete file: %w", err)
		}
		return "[SUCCESS] File deleted.", nil

	case edit.MoveTo != "":
		dst := resolver.Resolve(edit.MoveTo)
		if dryRun {
			return fmt.Sprintf("[DRY RUN] File would be moved to '%s'.", edit.MoveTo), nil
		}
		if err := moveFile(path, dst); err != nil {
			return "", fmt.Errorf("could not move file: %w", err)
		}
		return fmt.Sprintf("[SUCCESS] File moved to '%s'.", edit.MoveTo), nil

	case edit.Hunks != nil:
		content := ""
		if fileExists(path) {
			var err error
			if content, err = readFileString(path); err != nil {
				return "", fmt.Errorf("could not read file: %w", err)
			}
		}
		patched, err := applyHunks(content, edit.Hunks)
		if err != nil {
			return "", err
		}
		if dryRun {
			return "[DRY RUN] Udiff patch would be applied.", nil
		}
		if err := writeFileString(path, patched); err != nil {
			return "", fmt.Errorf("could not write changes to file: %w", err)
		}
		return "[SUCCESS] Udiff patch applied.", nil

	case strings.TrimSpace(edit.Search) == "":
		if dryRun {
			return "[DRY RUN] File would be created/overwritten.", nil
		}
		if err := writeFileString(path, edit.Replace); err != nil {
			return "", fmt.Errorf("could not create/write file: %w", err)
		}
		return "[SUCCESS] File created/overwritten.", nil

	default:
		content, err := readFileString(path)
		if err != nil {
			return "", fmt.Errorf("could not read file: %w", err)
		}

		lines := splitAfterLines(content)
		matches, length := FindOccurrences(lines, edit.Search)
		if len(matches) != 1 {
			return "", fmt.Errorf("expected 1 replacement, but %d occurred, aborting", len(matches))
		}

		if dryRun {
			return "[DRY RUN] Patch would be applied successfully.", nil
		}

		start := matches[0]
		replaceLines := splitAfterLines(edit.Replace)
		spliced := make([]string, 0, len(lines)-length+len(replaceLines))
		spliced = append(spliced, lines[:start]...)
		spliced = append(spliced, replaceLines...)
		spliced = append(spliced, lines[start+length:]...)

		if err := writeFileString(path, strings.Join(spliced, "")); err != nil {
			return "", fmt.Errorf("could not write changes to file: %w", err)
		}
		return "[SUCCESS] Patch applied.", nil
	}
}

// touchedPaths lists the resolved files a successful run modified or
// created, for editor refresh. Deletions are skipped; there is no buffer
// content to reload.
func touchedPaths(resolver *PathResolver, edits []Edit, results []ApplyResult) []string {
	var paths []string
	for i, result := range results {
		if !result.OK {
			continue
		}
		edit := edits[i]
		switch {
		case edit.Delete:
		case edit.MoveTo != "":
			paths = append(paths, resolver.Resolve(edit.MoveTo))
		default:
			paths = append(paths, resolver.Resolve(edit.Path))
		}
	}
	return paths
}
