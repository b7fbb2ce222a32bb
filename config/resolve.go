package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/parallelweb/errors"
)

// LoadFile reads a YAML or JSON document into a generic map. Key validation is
// left to the consumer so that unknown keys can be reported precisely.
func LoadFile(filename string) (map[string]any, error) {
	if filename == "" {
		return nil, errors.New("config filename is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", filename)
	}

	return values, nil
}
