package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectCatalogFile is the catalog filename inside a project directory.
const ProjectCatalogFile = "catalog.yaml"

// LoadFile reads a catalog document without interning it. Callers
// that want strict checking validate the File before handing it to
// New.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return &f, nil
}

// Load reads and interns a tile catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("interning catalog: %w", err)
	}
	return c, nil
}

// LoadProject loads the tile catalog from a project directory.
// It looks for catalog.yaml in the given directory.
func LoadProject(projectDir string) (*Catalog, error) {
	return Load(filepath.Join(projectDir, ProjectCatalogFile))
}
