// Package apiban counts banned API tokens in source files and compares the
// counts against a per-file baseline. Matching is a raw substring count; it
// has no notion of tokens, strings or comments beyond the optional
// doc-comment line filter, so banned tokens should be specific (a path
// prefix such as "std::fs" rather than a bare identifier).
package apiban

import (
	"sort"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// Count returns the number of occurrences of rule.Token in content.
// With SkipDocComments set, lines whose trimmed text starts with the
// doc-comment marker are dropped before counting.
func Count(content string, rule domain.APIBanRule) int {
	if rule.Token == "" {
		return 0
	}
	if rule.SkipDocComments {
		content = stripDocLines(content, rule.Marker())
	}
	return strings.Count(content, rule.Token)
}

func stripDocLines(content, marker string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Tally counts rule.Token in every file, keeping only files with hits.
func Tally(files []domain.SourceFile, rule domain.APIBanRule) domain.ScanResult {
	result := domain.ScanResult{Token: rule.Token, Counts: make(map[string]int)}
	for _, f := range files {
		if n := Count(f.Content, rule); n > 0 {
			result.Counts[f.Path] = n
		}
	}
	return result
}

// Evaluate compares observed counts with the rule baseline. Files are
// visited in sorted path order; each file yields at most one violation.
func Evaluate(result domain.ScanResult, rule domain.APIBanRule) []domain.Violation {
	var violations []domain.Violation
	for _, path := range result.Paths() {
		count := result.Counts[path]
		allowed, listed := rule.Allowance(path)
		switch {
		case !listed:
			violations = append(violations,
				domain.Violationf("new %s usage in %s (%d matches)", rule.Token, path, count))
		case count > allowed:
			violations = append(violations,
				domain.Violationf("increased %s usage in %s (%d > baseline %d)", rule.Token, path, count, allowed))
		}
	}
	return violations
}

// Scan runs Tally and Evaluate for each rule in order over the same files.
func Scan(files []domain.SourceFile, rules []domain.APIBanRule) []domain.Violation {
	var violations []domain.Violation
	for _, rule := range rules {
		violations = append(violations, Evaluate(Tally(files, rule), rule)...)
	}
	return violations
}

// Tighten lowers every baseline entry of rule to the count observed in
// result and drops entries whose file no longer uses the token. Entries are
// never raised and unlisted files are left alone. The returned rule owns a
// fresh baseline map; changes are in sorted path order.
func Tighten(result domain.ScanResult, rule domain.APIBanRule) (domain.APIBanRule, []domain.BaselineChange) {
	paths := make([]string, 0, len(rule.Baseline))
	for path := range rule.Baseline {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var (
		baseline = make(map[string]int, len(rule.Baseline))
		changes  []domain.BaselineChange
	)
	for _, path := range paths {
		allowed := rule.Baseline[path]
		count := result.Counts[path]
		if count >= allowed {
			baseline[path] = allowed
			continue
		}
		changes = append(changes, domain.BaselineChange{Token: rule.Token, Path: path, From: allowed, To: count})
		if count > 0 {
			baseline[path] = count
		}
	}

	out := rule
	out.Baseline = baseline
	if len(baseline) == 0 {
		out.Baseline = nil
	}
	return out, changes
}
