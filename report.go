package dap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	dryRunStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

func formatPreflightResult(r PreflightResult) string {
	prefix := fmt.Sprintf("  - Patch #%d for '%s':", r.Index, r.Path)

	if !r.OK {
		return fmt.Sprintf("%s %s\n", prefix, errorStyle.Render("FAILED ("+r.Detail+")"))
	}
	if r.Detail == "" {
		return fmt.Sprintf("%s %s\n", prefix, okStyle.Render("OK"))
	}
	return fmt.Sprintf("%s %s\n", prefix, okStyle.Render("OK ("+r.Detail+")"))
}

func formatApplyResult(r ApplyResult) string {
	switch {
	case !r.OK:
		return fmt.Sprintf("    %s\n", errorStyle.Render("[ERROR] "+r.Message))
	case strings.HasPrefix(r.Message, "[DRY RUN]"):
		return fmt.Sprintf("    %s\n", dryRunStyle.Render(r.Message))
	default:
		return fmt.Sprintf("    %s\n", okStyle.Render(r.Message))
	}
}

// FormatSummary renders the final counters block.
func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render("--- Summary ---") + "\n")
	fmt.Fprintf(&b, "Total patches:        %s\n", summaryStyle.Render(fmt.Sprintf("%d", s.Total)))
	fmt.Fprintf(&b, "Successfully applied: %s\n", okStyle.Render(fmt.Sprintf("%d", s.Succeeded)))

	failed := fmt.Sprintf("%d", s.Failed)
	if s.Failed > 0 {
		failed = errorStyle.Render(failed)
	}
	fmt.Fprintf(&b, "Failed to apply:      %s\n", failed)
	return b.String()
}
