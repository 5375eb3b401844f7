// Package edges evaluates direct dependency edges between workspace
// packages against forbidden and required rules.
package edges

import "github.com/abdidvp/archguard/internal/domain"

// Check evaluates forbidden rules and then required rules against graph.
// A rule whose source package is absent yields a single "missing workspace
// crate" violation and evaluation moves on. Targets are visited in sorted
// order so the output is stable.
func Check(graph *domain.DependencyGraph, forbidden, required []domain.EdgeRule) []domain.Violation {
	var violations []domain.Violation
	violations = append(violations, CheckForbidden(graph, forbidden)...)
	violations = append(violations, CheckRequired(graph, required)...)
	return violations
}

// CheckForbidden reports every forbidden edge present in graph.
func CheckForbidden(graph *domain.DependencyGraph, rules []domain.EdgeRule) []domain.Violation {
	var violations []domain.Violation
	for _, rule := range rules {
		source, ok := graph.Lookup(rule.Source)
		if !ok {
			violations = append(violations, missingCrate(rule.Source))
			continue
		}
		for _, target := range rule.SortedTargets() {
			if source.HasDependency(target) {
				violations = append(violations,
					domain.Violationf("forbidden dependency edge: %s -> %s", rule.Source, target))
			}
		}
	}
	return violations
}

// CheckRequired reports every required edge missing from graph.
func CheckRequired(graph *domain.DependencyGraph, rules []domain.EdgeRule) []domain.Violation {
	var violations []domain.Violation
	for _, rule := range rules {
		source, ok := graph.Lookup(rule.Source)
		if !ok {
			violations = append(violations, missingCrate(rule.Source))
			continue
		}
		for _, target := range rule.SortedTargets() {
			if !source.HasDependency(target) {
				violations = append(violations,
					domain.Violationf("missing required dependency edge: %s -> %s", rule.Source, target))
			}
		}
	}
	return violations
}

func missingCrate(name string) domain.Violation {
	return domain.Violationf("missing workspace crate: %s", name)
}
