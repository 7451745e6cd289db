package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acksell/entitytable/dynamodb/awsclient"
	"github.com/acksell/entitytable/dynamodb/internal/validate"
	"github.com/acksell/entitytable/dynamodb/schema"
	"github.com/acksell/entitytable/dynamodb/table"
	"gopkg.in/yaml.v3"
)

const configFileName = "ddb.tables.yaml"

// Config holds the tables managed by ddb and how to reach DynamoDB.
// Loaded from ddb.tables.yaml.
type Config struct {
	AWS   awsclient.Options `yaml:"aws"`
	Local LocalConfig       `yaml:"local"`

	// Concurrency bounds how many tables are processed at once.
	Concurrency int `yaml:"concurrency" validate:"omitempty,min=1,max=32"`
	// WaitTimeout bounds --wait. Defaults to 5m.
	WaitTimeout time.Duration `yaml:"waitTimeout" validate:"gte=0"`

	Tables []TableConfig `yaml:"tables" validate:"required,min=1,unique=Name,dive"`

	// dir is the directory of the config file; schema paths are relative to it.
	dir string
}

// LocalConfig configures the BadgerDB table catalog used with --local.
type LocalConfig struct {
	// DataDir is where BadgerDB stores data. Empty means in-memory.
	DataDir string `yaml:"dataDir"`
}

// TableConfig describes one table.
type TableConfig struct {
	Name          string         `yaml:"name" validate:"required"`
	Schema        string         `yaml:"schema" validate:"required"`
	ReadCapacity  int64          `yaml:"readCapacity" validate:"gte=0"`
	WriteCapacity int64          `yaml:"writeCapacity" validate:"gte=0"`
	SortKey       string         `yaml:"sortKey"`
	SchemaOptions schema.Options `yaml:"schemaOptions"`
}

const defaultWaitTimeout = 5 * time.Minute

var errNoConfig = errors.New("no " + configFileName + " found in this directory or any parent")

// LoadConfig reads the config at path, or searches for ddb.tables.yaml
// walking up from the current directory when path is empty.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return Config{}, errNoConfig
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = defaultWaitTimeout
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Select returns the tables named in names, or all tables when names is empty.
func (c Config) Select(names []string) ([]TableConfig, error) {
	if len(names) == 0 {
		return c.Tables, nil
	}
	byName := make(map[string]TableConfig, len(c.Tables))
	for _, t := range c.Tables {
		byName[t.Name] = t
	}
	selected := make([]TableConfig, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("table %q is not defined in the config", name)
		}
		selected = append(selected, t)
	}
	return selected, nil
}

// SchemaPath resolves the table's schema path against the config directory.
func (c Config) SchemaPath(t TableConfig) string {
	if filepath.IsAbs(t.Schema) {
		return t.Schema
	}
	return filepath.Join(c.dir, t.Schema)
}

func (t TableConfig) tableConfig() table.Config {
	return table.Config{
		ReadCapacity:  t.ReadCapacity,
		WriteCapacity: t.WriteCapacity,
		SortKey:       t.SortKey,
		SchemaOptions: t.SchemaOptions,
	}
}

// findConfigFile searches for ddb.tables.yaml walking up from current directory.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}
