package styles

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the immutable list of art styles available to a run.
type Catalog struct {
	Styles []string `json:"art_styles" yaml:"art_styles"`
}

// Load reads a style catalog from a JSON or YAML file, detected by
// extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles file: %w", err)
	}

	var catalog Catalog
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse styles file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse styles file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported styles file format: %s (supported: .json, .yaml)", ext)
	}

	if len(catalog.Styles) == 0 {
		return nil, fmt.Errorf("art styles list is empty in %s", path)
	}

	return &catalog, nil
}

// Pick returns a uniformly random style from the catalog.
func (c *Catalog) Pick() string {
	return c.Styles[rand.IntN(len(c.Styles))]
}

// PickSeeded returns a random style from a deterministic sequence. Used
// for reproducible runs.
func (c *Catalog) PickSeeded(seed uint64) string {
	r := rand.New(rand.NewPCG(seed, 0))
	return c.Styles[r.IntN(len(c.Styles))]
}
