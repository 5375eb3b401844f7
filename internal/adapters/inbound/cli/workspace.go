package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/abdidvp/archguard/internal/adapters/outbound/cargo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/fixture"
	"github.com/abdidvp/archguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/manifest"
	"github.com/abdidvp/archguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
)

const (
	envRoot  = "ARCHGUARD_ROOT"
	envCargo = "ARCHGUARD_CARGO"
)

// workspace is the wired-up environment a command runs against.
type workspace struct {
	root       string
	configPath string
	loader     *config.YAMLLoader
	svc        *application.CheckService
}

// openWorkspace resolves the workspace root, loads its .env and wires the adapters.
func (o *options) openWorkspace() (*workspace, error) {
	git := gitinfo.New()

	root, err := resolveRoot(o.root, git)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	binary := os.Getenv(envCargo)
	if binary == "" {
		binary = "cargo"
	}
	cargoAdapter := cargo.New(binary, root)

	var metadata domain.MetadataProvider = cargoAdapter
	if o.metadataFile != "" {
		metadata = fixture.NewMetadataFile(o.metadataFile, "")
	}

	slog.Debug("workspace resolved", "root", root, "cargo", binary, "metadata_file", o.metadataFile)

	return &workspace{
		root:       root,
		configPath: o.configPath,
		loader:     config.New(),
		svc:        application.NewCheckService(metadata, cargoAdapter, scanner.New(), manifest.New(), git),
	}, nil
}

func (w *workspace) policy() (domain.Policy, error) {
	return w.loader.Load(w.root, w.configPath)
}

func resolveRoot(flag string, git *gitinfo.GitInfoAdapter) (string, error) {
	if flag == "" {
		flag = os.Getenv(envRoot)
	}
	if flag != "" {
		abs, err := filepath.Abs(flag)
		if err != nil {
			return "", fmt.Errorf("resolving root: %w", err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	if top, err := git.WorkTreeRoot(cwd); err == nil {
		return top, nil
	}
	return cwd, nil
}
