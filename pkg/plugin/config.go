// pkg/plugin/config.go

package plugin

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config binds type names to plugin names, e.g.
//
//	types:
//	  TXT: length-text
type Config struct {
	Types map[string]string `yaml:"types"`
}

// ParseConfig decodes a YAML plugin configuration.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse plugin config")
	}
	return &c, nil
}

// LoadConfig reads a YAML plugin configuration from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// Apply binds every configured type on r.
func (c *Config) Apply(r *Registry) error {
	types := make([]string, 0, len(c.Types))
	for t := range c.Types {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		if err := r.Bind(t, c.Types[t]); err != nil {
			return err
		}
	}
	return nil
}
