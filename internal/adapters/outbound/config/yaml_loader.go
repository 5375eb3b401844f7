package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the policy file looked up in the workspace root.
const FileName = ".archguard.yaml"

// YAMLLoader implements domain.PolicyLoader by reading .archguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the policy. An explicit configPath must exist; otherwise
// .archguard.yaml is read from workspaceRoot and the built-in policy is
// returned when it does not exist.
func (l *YAMLLoader) Load(workspaceRoot, configPath string) (domain.Policy, error) {
	path := Path(workspaceRoot, configPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && configPath == "" {
			return domain.DefaultPolicy().WithDefaults(), nil
		}
		return domain.Policy{}, fmt.Errorf("reading policy: %w", err)
	}

	return Parse(data, filepath.Base(path))
}

// Path returns the policy file location: configPath resolved against
// workspaceRoot, or .archguard.yaml in workspaceRoot when configPath is empty.
func Path(workspaceRoot, configPath string) string {
	switch {
	case configPath == "":
		return filepath.Join(workspaceRoot, FileName)
	case filepath.IsAbs(configPath):
		return configPath
	default:
		return filepath.Join(workspaceRoot, configPath)
	}
}

// Parse decodes and validates a policy document. Unknown keys are rejected
// so that a typo cannot silently disable a rule.
func Parse(data []byte, name string) (domain.Policy, error) {
	var p domain.Policy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return domain.Policy{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate before defaults are applied, so errors point at the user's input.
	if err := p.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return p.WithDefaults(), nil
}

// Marshal renders a policy as YAML.
func Marshal(p domain.Policy) ([]byte, error) {
	return yaml.Marshal(p)
}
