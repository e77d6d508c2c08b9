package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// BackendConfig is the optional YAML sidecar controlling which Emitter
// backend a compile run uses and how it names things.
type BackendConfig struct {
	Backend      string `yaml:"backend"`
	ModulePrefix string `yaml:"modulePrefix"`
}

// DefaultBackendConfig is used when no config file is given.
func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{Backend: BackendText, ModulePrefix: "np"}
}

// LoadBackendConfig reads and parses a backend config file.
func LoadBackendConfig(path string) (*BackendConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultBackendConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
