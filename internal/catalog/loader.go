package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of the external catalog: the database
// root directory (tables live at "{database_root}/{oid}") plus the
// table list.
type File struct {
	DatabaseRoot string     `yaml:"database_root"`
	Tables       []RawTable `yaml:"tables"`
}

// LoadFile reads a YAML catalog file from path.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if f.DatabaseRoot == "" {
		return nil, fmt.Errorf("catalog: %s: database_root is required", path)
	}
	return &f, nil
}
