package mapstruct

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .mapstruct.yaml configuration file.
type Config struct {
	// History tunes the undo/redo snapshot history.
	History HistoryConfig `yaml:"history,omitempty"`

	// Extract configures local field extraction.
	Extract ExtractConfig `yaml:"extract,omitempty"`

	// Preview configures the remote service-description data source.
	// When nil, only local extraction is available.
	Preview *PreviewConfig `yaml:"preview,omitempty"`

	// Backend is passed through to the exported document.
	Backend BackendConfig `yaml:"backend,omitempty"`

	// MatchRules are extra matching predicates appended to the built-in
	// cascade, written as boolean expressions over source and target
	// (e.g. `source.Type == target.Type && lower(source.Name) == lower(target.Name)`).
	MatchRules []string `yaml:"match_rules,omitempty"`
}

// HistoryConfig bounds the snapshot history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity,omitempty"`
}

// ExtractConfig holds local extraction settings.
type ExtractConfig struct {
	// Root overrides the search root for the business folder.
	// Defaults to the working directory.
	Root string `yaml:"root,omitempty"`

	// Model preselects the dao/model subfolder, skipping the prompt.
	Model string `yaml:"model,omitempty"`
}

// PreviewConfig holds remote fetch settings.
type PreviewConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// BackendConfig carries export metadata supplied by the user.
type BackendConfig struct {
	Type string `yaml:"type,omitempty"`
}

// HistoryCapacity returns the configured capacity or the default.
func (c *Config) HistoryCapacity() int {
	if c.History.Capacity > 0 {
		return c.History.Capacity
	}

	return DefaultHistoryCapacity
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".mapstruct.yaml", ".mapstruct.yml", "mapstruct.yaml", "mapstruct.yml"}

// LoadConfig finds and loads the nearest .mapstruct.yaml walking up
// from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
