package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/abdidvp/archguard/internal/domain"
)

var skipDirs = map[string]bool{
	".git": true,
}

// FileScanner implements domain.SourceWalker by walking the filesystem.
// It never writes.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Walk reads every file under base/root whose path relative to root
// matches one of include and none of exclude. Returned paths are relative
// to base, slash separated and sorted.
func (s *FileScanner) Walk(base, root string, include, exclude []string) ([]domain.SourceFile, error) {
	absRoot := root
	if !filepath.IsAbs(root) {
		absRoot = filepath.Join(base, root)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	var files []domain.SourceFile
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || matchAny(exclude, rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchAny(include, rel) || matchAny(exclude, rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, domain.SourceFile{
			Path:    relativeTo(base, path),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func relativeTo(base, path string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
