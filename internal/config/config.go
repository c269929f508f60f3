// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultTemplate    = "default"
	defaultHome        = "http://greendroid.cyrilmottier.com"
	defaultSearchPage  = "search.html"
	defaultPlaceholder = "Search"
)

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title           string        `yaml:"title"`
	Description     string        `yaml:"description"`
	Template        string        `yaml:"template"`
	Project         ProjectConfig `yaml:"project"`
	Search          SearchConfig  `yaml:"search"`
	APILevels       []int         `yaml:"apilevels"`
	DefaultAPILevel int           `yaml:"defaultapilevel"`
}

// ProjectConfig names the documented project. Home is where the masthead title links.
type ProjectConfig struct {
	Name string `yaml:"name"`
	Home string `yaml:"home"`
}

type SearchConfig struct {
	Action      string `yaml:"action"`
	Placeholder string `yaml:"placeholder"`
}

// LoadSiteConfig reads and parses site.yaml, then fills in defaults.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills every unset optional field.
func (c *SiteConfig) ApplyDefaults() {
	if c.Template == "" {
		c.Template = defaultTemplate
	}
	if c.Project.Home == "" {
		c.Project.Home = defaultHome
	}
	if c.Search.Action == "" {
		c.Search.Action = defaultSearchPage
	}
	if c.Search.Placeholder == "" {
		c.Search.Placeholder = defaultPlaceholder
	}
	if c.DefaultAPILevel == 0 {
		for _, level := range c.APILevels {
			if level > c.DefaultAPILevel {
				c.DefaultAPILevel = level
			}
		}
	}
}
