package cargo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/abdidvp/archguard/internal/domain"
)

type metadataDoc struct {
	Packages *[]metadataPackage `json:"packages"`
}

type metadataPackage struct {
	Name         *string               `json:"name"`
	Dependencies *[]metadataDependency `json:"dependencies"`
}

type metadataDependency struct {
	Name *string `json:"name"`
}

// ParseMetadata decodes `cargo metadata --format-version 1` output into a
// dependency graph. Any deviation from the expected shape is an
// ErrMalformedMetadata error.
func ParseMetadata(data []byte) (*domain.DependencyGraph, error) {
	var doc metadataDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMetadata, err)
	}
	if doc.Packages == nil {
		return nil, fmt.Errorf("%w: missing \"packages\" array", domain.ErrMalformedMetadata)
	}

	pkgs := make([]domain.Package, 0, len(*doc.Packages))
	for i, raw := range *doc.Packages {
		if raw.Name == nil || *raw.Name == "" {
			return nil, fmt.Errorf("%w: packages[%d] has no name", domain.ErrMalformedMetadata, i)
		}
		if raw.Dependencies == nil {
			return nil, fmt.Errorf("%w: package %s has no \"dependencies\" array", domain.ErrMalformedMetadata, *raw.Name)
		}
		pkg := domain.Package{Name: *raw.Name, Dependencies: make([]string, 0, len(*raw.Dependencies))}
		for j, dep := range *raw.Dependencies {
			if dep.Name == nil {
				return nil, fmt.Errorf("%w: package %s dependencies[%d] has no name", domain.ErrMalformedMetadata, *raw.Name, j)
			}
			pkg.Dependencies = append(pkg.Dependencies, *dep.Name)
		}
		pkgs = append(pkgs, pkg)
	}

	return domain.NewDependencyGraph(pkgs)
}
