package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// RenderGraph lists every workspace package with its direct dependencies.
// Dependencies covered by a forbidden rule are marked ✗, those required by
// a rule are marked ✓, and required edges that are absent are listed as
// missing under their source package.
func RenderGraph(graph *domain.DependencyGraph, policy domain.Policy) string {
	if graph == nil || len(graph.Packages) == 0 {
		return "\n  " + dimStyle.Render("No workspace packages found.") + "\n\n"
	}

	forbidden := edgeSet(policy.ForbiddenEdges)
	required := edgeSet(policy.RequiredEdges)

	var b strings.Builder
	edges := 0
	for _, p := range graph.Packages {
		edges += len(p.Dependencies)
	}
	b.WriteString(headerStyle.Render("Dependency Graph"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d packages · %d direct edges", len(graph.Packages), edges)))
	b.WriteString("\n\n")

	for _, name := range graph.Names() {
		pkg, _ := graph.Lookup(name)
		b.WriteString(titleStyle.Render(name))
		b.WriteString("\n")

		for _, dep := range pkg.Dependencies {
			key := name + "\x00" + dep
			switch {
			case forbidden[key]:
				fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), dep)
			case required[key]:
				fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("✓"), dep)
			default:
				fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("·"), dep)
			}
		}

		for _, rule := range policy.RequiredEdges {
			if rule.Source != name {
				continue
			}
			for _, target := range rule.SortedTargets() {
				if !pkg.HasDependency(target) {
					fmt.Fprintf(&b, "  %s %s %s\n", failStyle.Render("!"), target, dimStyle.Render("(required, missing)"))
				}
			}
		}
	}

	return b.String()
}

func edgeSet(rules []domain.EdgeRule) map[string]bool {
	set := make(map[string]bool)
	for _, r := range rules {
		for _, t := range r.Targets {
			set[r.Source+"\x00"+t] = true
		}
	}
	return set
}
