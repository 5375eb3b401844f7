// Package isolation evaluates the output of an isolation build: a package
// built with default features disabled must not pull in a forbidden package.
package isolation

import (
	"regexp"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// treePrefix matches the indentation and box-drawing characters cargo tree
// prints before each package, plus the optional depth prefix.
var treePrefix = regexp.MustCompile(`^[\s│├└─|` + "`" + `\\-]*\d*`)

// Evaluate turns the outcome of the rule's build command into at most one
// violation.
func Evaluate(rule domain.IsolationRule, outcome domain.BuildOutcome) []domain.Violation {
	switch rule.Strategy {
	case domain.IsolationCheck:
		return evaluateCheck(outcome)
	default:
		return evaluateTree(rule, outcome)
	}
}

func evaluateTree(rule domain.IsolationRule, outcome domain.BuildOutcome) []domain.Violation {
	if outcome.ExitCode != 0 {
		details := strings.TrimSpace(outcome.Stderr)
		if details == "" {
			details = "cargo tree command failed"
		}
		return []domain.Violation{domain.Violationf(
			"unable to verify %s no-default-features dependency tree: %s", rule.Package, details)}
	}
	if TreeContains(outcome.Stdout, rule.Forbidden) {
		return []domain.Violation{domain.Violationf(
			"%s --no-default-features still pulls %s in dependency tree", rule.Package, rule.Forbidden)}
	}
	return nil
}

func evaluateCheck(outcome domain.BuildOutcome) []domain.Violation {
	if outcome.ExitCode == 0 {
		return nil
	}
	details := strings.TrimSpace(outcome.Stderr)
	if details == "" {
		details = strings.TrimSpace(outcome.Stdout)
	}
	if details == "" {
		details = "cargo check command failed"
	}
	return []domain.Violation{domain.Violationf("build failed under isolation: %s", details)}
}

// TreeContains reports whether any line of a dependency tree names pkg,
// i.e. reads "<pkg> v<version>" once the tree prefix is stripped.
func TreeContains(tree, pkg string) bool {
	needle := pkg + " v"
	for _, line := range strings.Split(tree, "\n") {
		if strings.HasPrefix(treePrefix.ReplaceAllString(line, ""), needle) {
			return true
		}
	}
	return false
}
