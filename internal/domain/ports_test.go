package domain_test

import (
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/outbound/cargo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/fixture"
	"github.com/abdidvp/archguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/manifest"
	"github.com/abdidvp/archguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	_ domain.MetadataProvider   = (*cargo.Cargo)(nil)
	_ domain.MetadataProvider   = (*fixture.Metadata)(nil)
	_ domain.MetadataProvider   = (*fixture.MetadataFile)(nil)
	_ domain.BuildGraphProvider = (*cargo.Cargo)(nil)
	_ domain.BuildGraphProvider = (*fixture.Build)(nil)
	_ domain.SourceWalker       = (*scanner.FileScanner)(nil)
	_ domain.PolicyLoader       = (*config.YAMLLoader)(nil)
	_ domain.ManifestReader     = (*manifest.TOMLReader)(nil)
	_ domain.GitInfo            = (*gitinfo.GitInfoAdapter)(nil)
)

func TestBaselineChange_Dropped(t *testing.T) {
	assert.True(t, domain.BaselineChange{From: 2, To: 0}.Dropped())
	assert.False(t, domain.BaselineChange{From: 2, To: 1}.Dropped())
}
