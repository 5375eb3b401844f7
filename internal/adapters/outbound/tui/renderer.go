package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/abdidvp/archguard/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	passStyle   = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
)

// DisableColor forces plain-text output regardless of the terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Final status lines.
const (
	PassedLine = "Architecture guardrails passed."
	FailedLine = "Architecture guardrails failed."
)

// RenderReport renders one OK/FAIL line per check group, the violations of
// failing groups indented below it, and a final status line. Without a
// color-capable terminal the output is plain text.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	for _, g := range report.Groups {
		renderGroup(&b, g)
	}

	if report.Failed() {
		b.WriteString(failStyle.Render(FailedLine))
	} else {
		b.WriteString(passStyle.Render(PassedLine))
	}
	b.WriteString("\n")

	return b.String()
}

func renderGroup(b *strings.Builder, g domain.CheckGroupResult) {
	if !g.Failed() {
		fmt.Fprintf(b, "%s %s\n", passStyle.Render("OK:"), g.Name)
		return
	}

	fmt.Fprintf(b, "%s %s\n", failStyle.Render("FAIL:"), titleStyle.Render(g.Name))
	for _, v := range g.Violations {
		fmt.Fprintf(b, "  %s %s\n", warnStyle.Render("-"), v.Message)
	}
}
