package domain

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// IsolationStrategy selects how an isolation build is verified.
type IsolationStrategy string

const (
	// IsolationTree searches the dependency tree output for the forbidden package.
	IsolationTree IsolationStrategy = "tree"
	// IsolationCheck treats a failing build as the violation.
	IsolationCheck IsolationStrategy = "check"
)

// ValidIsolationStrategies enumerates all recognized strategies.
var ValidIsolationStrategies = []IsolationStrategy{IsolationTree, IsolationCheck}

// Default group names, matching the historical report lines.
const (
	DefaultEdgeGroupName     = "crate edge rules"
	DefaultManifestGroupName = "workspace manifest versions"
	DefaultManifestPath      = "Cargo.toml"
	DefaultSourceGlob        = "**/*.rs"
)

// Policy is the full guardrails configuration loaded from .archguard.yaml.
type Policy struct {
	ManifestPath     string           `yaml:"manifest_path"               json:"manifest_path"`
	EdgeGroupName    string           `yaml:"edge_group_name,omitempty"   json:"edge_group_name,omitempty"`
	ForbiddenEdges   []EdgeRule       `yaml:"forbidden_edges"             json:"forbidden_edges"`
	RequiredEdges    []EdgeRule       `yaml:"required_edges"              json:"required_edges"`
	APIBans          []APIBanGroup    `yaml:"api_bans"                    json:"api_bans"`
	Isolation        []IsolationRule  `yaml:"isolation"                   json:"isolation"`
	ManifestVersions ManifestVersions `yaml:"manifest_versions,omitempty" json:"manifest_versions"`
}

// APIBanGroup scans one source subtree for a set of banned tokens and is
// reported as a single check group.
type APIBanGroup struct {
	Name       string       `yaml:"name"              json:"name"`
	SourceRoot string       `yaml:"source_root"       json:"source_root"`
	Include    []string     `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude    []string     `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Rules      []APIBanRule `yaml:"rules"             json:"rules"`
}

// IsolationRule asserts that Package, built without default features and
// with only Features enabled, does not pull in Forbidden.
type IsolationRule struct {
	Name      string            `yaml:"name"               json:"name"`
	Package   string            `yaml:"package"            json:"package"`
	Features  []string          `yaml:"features,omitempty" json:"features,omitempty"`
	Forbidden string            `yaml:"forbidden"          json:"forbidden"`
	Strategy  IsolationStrategy `yaml:"strategy"           json:"strategy"`
}

// ManifestVersions toggles the workspace manifest version hygiene check.
type ManifestVersions struct {
	Enabled      bool   `yaml:"enabled"                 json:"enabled"`
	Name         string `yaml:"name,omitempty"          json:"name,omitempty"`
	ManifestPath string `yaml:"manifest_path,omitempty" json:"manifest_path,omitempty"`
}

// DefaultPolicy returns the built-in ruleset for the ito-rs workspace.
// Production code is zero-tolerance; the baselines below pin the legacy
// usage that is still being migrated.
func DefaultPolicy() Policy {
	return Policy{
		ManifestPath:  "ito-rs/Cargo.toml",
		EdgeGroupName: DefaultEdgeGroupName,
		ForbiddenEdges: []EdgeRule{
			{Kind: EdgeForbidden, Source: "ito-domain", Targets: []string{"ito-cli", "ito-web", "ito-core"}},
			{Kind: EdgeForbidden, Source: "ito-core", Targets: []string{"ito-cli", "ito-web"}},
			// The CLI must route through ito-core.
			{Kind: EdgeForbidden, Source: "ito-cli", Targets: []string{"ito-domain"}},
		},
		RequiredEdges: []EdgeRule{
			{Kind: EdgeRequired, Source: "ito-core", Targets: []string{"ito-domain"}},
			{Kind: EdgeRequired, Source: "ito-cli", Targets: []string{"ito-core"}},
			{Kind: EdgeRequired, Source: "ito-web", Targets: []string{"ito-core"}},
		},
		APIBans: []APIBanGroup{
			{
				Name:       "ito-domain API bans",
				SourceRoot: "ito-rs/crates/ito-domain/src",
				Include:    []string{DefaultSourceGlob},
				Rules: []APIBanRule{
					{Token: "miette::"},
					// discovery.rs hits are all #[cfg(test)] fixture setup.
					{Token: "std::fs", Baseline: map[string]int{"ito-rs/crates/ito-domain/src/discovery.rs": 9}},
					{Token: "std::process::Command"},
				},
			},
			{
				Name:       "ito-core API bans",
				SourceRoot: "ito-rs/crates/ito-core/src",
				Include:    []string{DefaultSourceGlob},
				Rules: []APIBanRule{
					{
						Token:           "miette::",
						SkipDocComments: true,
						Baseline: map[string]int{
							"ito-rs/crates/ito-core/src/harness/types.rs":    1,
							"ito-rs/crates/ito-core/src/harness/opencode.rs": 3,
							"ito-rs/crates/ito-core/src/harness/stub.rs":     4,
						},
					},
					{
						Token:           "miette!",
						SkipDocComments: true,
						Baseline: map[string]int{
							"ito-rs/crates/ito-core/src/harness/opencode.rs": 2,
							"ito-rs/crates/ito-core/src/harness/stub.rs":     3,
						},
					},
				},
			},
		},
		Isolation: []IsolationRule{
			{
				Name:      "ito-cli no-default-features decoupling",
				Package:   "ito-cli",
				Forbidden: "ito-web",
				Strategy:  IsolationTree,
			},
		},
		ManifestVersions: ManifestVersions{
			Enabled:      true,
			Name:         DefaultManifestGroupName,
			ManifestPath: DefaultManifestPath,
		},
	}
}

// WithDefaults fills unset optional fields and tags edge rules with their kind.
func (p Policy) WithDefaults() Policy {
	out := p
	if out.EdgeGroupName == "" {
		out.EdgeGroupName = DefaultEdgeGroupName
	}

	out.ForbiddenEdges = tagEdges(p.ForbiddenEdges, EdgeForbidden)
	out.RequiredEdges = tagEdges(p.RequiredEdges, EdgeRequired)

	out.APIBans = make([]APIBanGroup, len(p.APIBans))
	for i, g := range p.APIBans {
		if len(g.Include) == 0 {
			g.Include = []string{DefaultSourceGlob}
		}
		out.APIBans[i] = g
	}

	out.Isolation = make([]IsolationRule, len(p.Isolation))
	for i, r := range p.Isolation {
		if r.Strategy == "" {
			r.Strategy = IsolationTree
		}
		if r.Name == "" {
			r.Name = fmt.Sprintf("%s no-default-features decoupling", r.Package)
		}
		out.Isolation[i] = r
	}

	if out.ManifestVersions.Name == "" {
		out.ManifestVersions.Name = DefaultManifestGroupName
	}
	if out.ManifestVersions.ManifestPath == "" {
		out.ManifestVersions.ManifestPath = DefaultManifestPath
	}
	return out
}

func tagEdges(rules []EdgeRule, kind EdgeRuleKind) []EdgeRule {
	out := make([]EdgeRule, len(rules))
	for i, r := range rules {
		r.Kind = kind
		out[i] = r
	}
	return out
}

// Validate checks the policy for invalid values and returns a descriptive error.
func (p Policy) Validate() error {
	if p.ManifestPath == "" {
		return fmt.Errorf("%w: manifest_path is required", ErrInvalidPolicy)
	}

	// 1. edge rules need a source and at least one target
	for field, rules := range map[string][]EdgeRule{
		"forbidden_edges": p.ForbiddenEdges,
		"required_edges":  p.RequiredEdges,
	} {
		for i, r := range rules {
			if r.Source == "" {
				return fmt.Errorf("%w: %s[%d].source is required", ErrInvalidPolicy, field, i)
			}
			if len(r.Targets) == 0 {
				return fmt.Errorf("%w: %s[%d] (%s) has no targets", ErrInvalidPolicy, field, i, r.Source)
			}
			for _, t := range r.Targets {
				if t == "" {
					return fmt.Errorf("%w: %s[%d] (%s) has an empty target", ErrInvalidPolicy, field, i, r.Source)
				}
			}
		}
	}

	// 2. api ban groups
	names := make(map[string]bool)
	for i, g := range p.APIBans {
		if g.Name == "" {
			return fmt.Errorf("%w: api_bans[%d].name is required", ErrInvalidPolicy, i)
		}
		if names[g.Name] {
			return fmt.Errorf("%w: duplicate check group name %q", ErrInvalidPolicy, g.Name)
		}
		names[g.Name] = true
		if g.SourceRoot == "" {
			return fmt.Errorf("%w: api_bans[%d] (%s) source_root is required", ErrInvalidPolicy, i, g.Name)
		}
		for _, pattern := range append(append([]string{}, g.Include...), g.Exclude...) {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("%w: api_bans[%d] (%s) has invalid glob %q", ErrInvalidPolicy, i, g.Name, pattern)
			}
		}
		for j, r := range g.Rules {
			if r.Token == "" {
				return fmt.Errorf("%w: api_bans[%d].rules[%d].token is required", ErrInvalidPolicy, i, j)
			}
			for path, n := range r.Baseline {
				if n < 0 {
					return fmt.Errorf("%w: baseline for %s in %q must be >= 0 (got %d)", ErrInvalidPolicy, path, r.Token, n)
				}
			}
		}
	}

	// 3. isolation rules
	for i, r := range p.Isolation {
		if r.Package == "" || r.Forbidden == "" {
			return fmt.Errorf("%w: isolation[%d] requires package and forbidden", ErrInvalidPolicy, i)
		}
		if r.Strategy != "" && !isValidStrategy(r.Strategy) {
			return fmt.Errorf("%w: unknown isolation strategy %q (valid: tree, check)", ErrInvalidPolicy, r.Strategy)
		}
	}

	return nil
}

func isValidStrategy(s IsolationStrategy) bool {
	for _, v := range ValidIsolationStrategies {
		if s == v {
			return true
		}
	}
	return false
}
