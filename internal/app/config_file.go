package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Every field is
// optional; explicit CLI flags take precedence over file values.
type FileConfig struct {
	URLs     string `yaml:"urls" json:"urls"`
	Output   string `yaml:"output" json:"output"`
	Masthead string `yaml:"masthead" json:"masthead"`

	Fetch struct {
		UserAgent string `yaml:"userAgent" json:"userAgent"`
		// Timeout uses Go duration syntax, e.g. "10s".
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig, choosing the parser
// by extension and trying both when the extension is unknown.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if yerr := yaml.Unmarshal(b, &fc); yerr != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", yerr, jerr)
			}
		}
	}
	return fc, nil
}

// Apply fills zero-valued cfg fields from the file. Fields already set by
// the caller (flags) win.
func (fc FileConfig) Apply(cfg Config) (Config, error) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.Masthead == "" {
		cfg.Masthead = fc.Masthead
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == 0 && fc.Fetch.Timeout != "" {
		d, err := time.ParseDuration(fc.Fetch.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse fetch.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
