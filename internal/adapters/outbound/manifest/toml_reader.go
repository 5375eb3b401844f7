// Package manifest reads Cargo workspace manifests.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/abdidvp/archguard/internal/domain"
)

// TOMLReader implements domain.ManifestReader.
type TOMLReader struct{}

// New creates a TOMLReader.
func New() *TOMLReader { return &TOMLReader{} }

type cargoManifest struct {
	Workspace *struct {
		Package      map[string]any `toml:"package"`
		Dependencies map[string]any `toml:"dependencies"`
	} `toml:"workspace"`
}

// ReadWorkspace parses the [workspace] table of the manifest at path.
// Only string versions are kept: inline dependency specs (`dep = "1"`)
// carry no table and are skipped, as are non-string version values.
func (r *TOMLReader) ReadWorkspace(path string) (*domain.WorkspaceManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var raw cargoManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m := &domain.WorkspaceManifest{DependencyVersions: make(map[string]string)}
	if raw.Workspace == nil {
		return m, nil
	}
	m.HasWorkspace = true

	if v, ok := raw.Workspace.Package["version"].(string); ok {
		m.PackageVersion = v
	}
	for name, spec := range raw.Workspace.Dependencies {
		table, ok := spec.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := table["version"].(string); ok {
			m.DependencyVersions[name] = v
		}
	}
	return m, nil
}
