// Package config provides the YAML based configuration of anchord.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/trustdns/anchord/log"
	"gopkg.in/yaml.v2"
)

// DefaultAnchorDirectories is the search path used when the
// configuration does not name one. Ordered from lowest to highest
// precedence: a file in a later directory replaces a same-named file
// from an earlier one.
// nolint:gochecknoglobals
var DefaultAnchorDirectories = []string{
	"/usr/lib/dnssec-trust-anchors.d",
	"/run/dnssec-trust-anchors.d",
	"/etc/dnssec-trust-anchors.d",
}

// TrustAnchors is the configuration of the trust anchor store
type TrustAnchors struct {
	// Directories searched for *.positive and *.negative files,
	// ordered from lowest to highest precedence
	Directories []string `yaml:"directories"`

	// DumpOnLoad writes the store contents to the log after loading
	DumpOnLoad bool `yaml:"dumpOnLoad" default:"true"`
}

// API is the configuration of the inspection HTTP endpoint
type API struct {
	// Listen address for the inspection API and metrics, empty disables the endpoint
	Listen string `yaml:"listen"`
}

// Config is the overall application configuration
type Config struct {
	Log          log.Config   `yaml:"log"`
	TrustAnchors TrustAnchors `yaml:"trustAnchors"`
	API          API          `yaml:"api"`
}

// LoadConfig reads the configuration from the given YAML file.
//
// If the file does not exist and mandatory is false, a default
// configuration is returned.
func LoadConfig(path string, mandatory bool) (*Config, error) {
	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mandatory {
			cfg.TrustAnchors.Directories = DefaultAnchorDirectories

			return &cfg, nil
		}

		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("wrong file structure: %w", err)
	}

	if len(cfg.TrustAnchors.Directories) == 0 {
		cfg.TrustAnchors.Directories = DefaultAnchorDirectories
	}

	return &cfg, nil
}
