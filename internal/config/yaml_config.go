package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pathways/internal/models"
	"pathways/internal/validation"
)

// YAMLConfig represents the structure of the pathways file.
// Pathway presentation is hierarchical and easier to manage in YAML than env vars.
type YAMLConfig struct {
	Pathways []models.PathwayDef `yaml:"pathways"`
}

// LoadYAMLConfig loads the pathways file at path.
// Returns nil without error if the file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Pathways file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig parses and validates pathway definitions.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i, p := range cfg.Pathways {
		if p.Name == "" {
			return nil, fmt.Errorf("pathway %d: name is required", i)
		}
		if !validation.ValidatePathway(p.Name) {
			return nil, fmt.Errorf("pathway %d: invalid name %q", i, p.Name)
		}
		for j, f := range p.Fields {
			if f.Label == "" || len(f.Keys) == 0 {
				return nil, fmt.Errorf("pathway %s field %d: label and keys are required", p.Name, j)
			}
		}
	}

	return &cfg, nil
}

// Catalog merges the file's pathways over the built-in catalog.
// A pathway in the file replaces the built-in definition of the same name;
// empty sections keep the built-in values.
func (c *YAMLConfig) Catalog() models.Catalog {
	catalog := models.DefaultCatalog()
	if c == nil {
		return catalog
	}

	for _, p := range c.Pathways {
		base, ok := catalog[p.Name]
		if !ok {
			catalog[p.Name] = p
			continue
		}
		if p.Title != "" {
			base.Title = p.Title
		}
		if len(p.Questions) > 0 {
			base.Questions = p.Questions
		}
		if len(p.Fields) > 0 {
			base.Fields = p.Fields
		}
		catalog[p.Name] = base
	}

	return catalog
}

// LoadCatalog returns the pathway catalog for this configuration.
func (c *Config) LoadCatalog() (models.Catalog, error) {
	y, err := LoadYAMLConfig(c.PathwaysFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.PathwaysFile, err)
	}
	return y.Catalog(), nil
}
