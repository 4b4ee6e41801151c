package resources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigDocument is the parsed finished-config artifact. Only the two
// sections consumed for resource declaration are modeled; esm_runscripts
// writes many more, and all of them are ignored here.
type ConfigDocument struct {
	General  map[string]interface{} `yaml:"general"`
	Computer map[string]interface{} `yaml:"computer"`
}

// LoadConfigDocument reads and decodes a finished_config.yaml file.
func LoadConfigDocument(path string) (*ConfigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config artifact %s: %w", path, err)
	}

	var doc ConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config artifact %s: %w", path, err)
	}
	return &doc, nil
}
