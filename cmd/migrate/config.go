package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jihyekwon/scrapbook/internal/storage"
	"github.com/jihyekwon/scrapbook/internal/storage/es"
	"github.com/jihyekwon/scrapbook/internal/storage/factory"
	"github.com/jihyekwon/scrapbook/internal/storage/pg"
)

const defaultConfigPath = "cmd/migrate/config.yaml"

// MigrateConfig describes one migration run: the local database to read
// from and the remote store to write into.
type MigrateConfig struct {
	Source struct {
		Path string `yaml:"path"`
	} `yaml:"source"`
	Target struct {
		Type string `yaml:"type"`
		Pg   struct {
			ConnStr string `yaml:"conn_str"`
		} `yaml:"pg"`
		Es struct {
			Addresses []string `yaml:"addresses"`
			IndexName string   `yaml:"index_name"`
			Username  string   `yaml:"username"`
			Password  string   `yaml:"password"`
		} `yaml:"es"`
	} `yaml:"target"`
}

func LoadMigrateConfig(path string) (*MigrateConfig, error) {
	if path == "" {
		path = defaultConfigPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrate config: %w", err)
	}
	defer f.Close()

	var cfg MigrateConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse migrate config: %w", err)
	}

	if cfg.Source.Path == "" {
		return nil, fmt.Errorf("source.path is required")
	}
	return &cfg, nil
}

// StoreConfig maps the YAML target section onto the store factory config.
func (c *MigrateConfig) StoreConfig() (*factory.StoreConfig, error) {
	switch storage.Type(c.Target.Type) {
	case storage.PG:
		if c.Target.Pg.ConnStr == "" {
			return nil, fmt.Errorf("target.pg.conn_str is required")
		}
		return &factory.StoreConfig{
			Type: storage.PG,
			Pg:   &pg.PoolConfig{ConnStr: c.Target.Pg.ConnStr},
		}, nil

	case storage.ES:
		if len(c.Target.Es.Addresses) == 0 || c.Target.Es.IndexName == "" {
			return nil, fmt.Errorf("target.es.addresses and target.es.index_name are required")
		}
		return &factory.StoreConfig{
			Type: storage.ES,
			Es: &es.ClientConfig{
				Addresses: c.Target.Es.Addresses,
				IndexName: c.Target.Es.IndexName,
				Username:  c.Target.Es.Username,
				Password:  c.Target.Es.Password,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported migration target: %q", c.Target.Type)
	}
}
