// Package app assembles the shop bot from the core building blocks.
package app

import (
	corecache "github.com/m3rciful/shopbot/core/cache"
	coreconfig "github.com/m3rciful/shopbot/core/config"
	coredatabase "github.com/m3rciful/shopbot/core/database"
	"github.com/m3rciful/shopbot/internal/language"
)

// LanguagesConfig lists supported languages. An empty list means ru (1) and uz (2).
type LanguagesConfig struct {
	Default int             `yaml:"default"`
	List    []language.Spec `yaml:"list"`
}

// LocalesConfig points at the directory with <code>.yaml response files.
type LocalesConfig struct {
	Dir string `yaml:"dir" envconfig:"LOCALES_DIR"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database  coredatabase.Config `yaml:"database"`
	Cache     corecache.Config    `yaml:"cache"`
	Languages LanguagesConfig     `yaml:"languages" ignored:"true"`
	Locales   LocalesConfig       `yaml:"locales"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads path, applies environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates every section and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	if err := c.Database.Normalize(); err != nil {
		return err
	}
	if err := c.Cache.Normalize(); err != nil {
		return err
	}
	if len(c.Languages.List) == 0 {
		c.Languages.List = language.Defaults()
	}
	if c.Locales.Dir == "" {
		c.Locales.Dir = "locales"
	}
	return nil
}

// Registry builds the language registry described by the config.
func (c *Config) Registry() (*language.Registry, error) {
	return language.NewRegistry(c.Languages.List, c.Languages.Default)
}
