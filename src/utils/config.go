package utils

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// LoadAnalyzerConfig decodes the yaml file at path and fills unset fields with defaults.
// An empty path, or a path that does not exist, yields the default config.
func LoadAnalyzerConfig(path string) (*eventmodels.AnalyzerConfigYAML, error) {
	if path == "" {
		return eventmodels.DefaultAnalyzerConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("LoadAnalyzerConfig: %s not found, using defaults", path)
		return eventmodels.DefaultAnalyzerConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("LoadAnalyzerConfig: failed to read %s: %w", path, err)
	}

	var config eventmodels.AnalyzerConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("LoadAnalyzerConfig: failed to decode %s: %v: %w", path, err, eventmodels.ErrInvalidConfig)
	}

	config.Defaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadAnalyzerConfig: %w", err)
	}

	return &config, nil
}
