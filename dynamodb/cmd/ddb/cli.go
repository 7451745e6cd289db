package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/acksell/entitytable/dynamodb/awsclient"
	"github.com/acksell/entitytable/dynamodb/ddbiface"
	"github.com/acksell/entitytable/dynamodb/ddbstore"
	"github.com/acksell/entitytable/dynamodb/schema"
	"github.com/acksell/entitytable/dynamodb/table"
	"github.com/acksell/entitytable/dynamodb/tableset"
	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// cli is the parsed invocation shared by all commands.
type cli struct {
	cmd    string
	stdout io.Writer
	stderr io.Writer

	configPath string
	tableNames stringList
	local      bool
	dbDir      string
	wait       bool
	output     string
	verbose    bool

	logger  *zap.Logger
	closers []func() error
}

func parseFlags(cmd string, args []string, stdout, stderr io.Writer) (*cli, error) {
	c := &cli{cmd: cmd, stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet("ddb "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.configPath, "config", "", "config file (default: search for "+configFileName+")")
	fs.Var(&c.tableNames, "table", "restrict to a configured table (repeatable)")
	fs.BoolVar(&c.local, "local", false, "use the local BadgerDB store instead of AWS")
	fs.StringVar(&c.dbDir, "db", "", "local store directory (implies --local)")
	fs.BoolVar(&c.wait, "wait", false, "wait for create/delete to finish")
	fs.StringVar(&c.output, "output", "yaml", "output format: json or yaml")
	fs.BoolVar(&c.verbose, "verbose", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ddb %s [flags] [table...]\n\nFlags:\n", cmd)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.tableNames = append(c.tableNames, fs.Args()...)

	switch c.output {
	case "json", "yaml":
	default:
		fmt.Fprintf(stderr, "ddb %s: unsupported output format %q (want json or yaml)\n", cmd, c.output)
		return nil, fmt.Errorf("unsupported output format %q", c.output)
	}
	if c.dbDir != "" {
		c.local = true
	}

	c.logger = newLogger(stderr, c.verbose)
	return c, nil
}

// newLogger writes human-readable logs to w. Debug level only when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = c.logger.Sync()
}

func (c *cli) loadConfig() (Config, error) {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return Config{}, err
	}
	c.logger.Debug("loaded config", zap.String("dir", cfg.dir), zap.Int("tables", len(cfg.Tables)))
	return cfg, nil
}

// loadOptionalConfig is loadConfig for commands that can run without tables.
// A missing ddb.tables.yaml is only an error when --config was given.
func (c *cli) loadOptionalConfig() (Config, error) {
	cfg, err := LoadConfig(c.configPath)
	if errors.Is(err, errNoConfig) {
		return Config{}, nil
	}
	return cfg, err
}

// client returns the local store with --local, otherwise a DynamoDB client.
func (c *cli) client(ctx context.Context, cfg Config) (ddbiface.TableAPI, error) {
	if c.local {
		return c.localStore(cfg)
	}
	awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("using DynamoDB",
		zap.String("region", awsCfg.Region),
		zap.String("endpoint", cfg.AWS.Endpoint),
	)
	return awsclient.NewDynamoDB(awsCfg, cfg.AWS.Endpoint), nil
}

func (c *cli) awsConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	return awsclient.LoadConfig(ctx, cfg.AWS)
}

func (c *cli) localStore(cfg Config) (*ddbstore.Store, error) {
	dir := c.dbDir
	if dir == "" && cfg.Local.DataDir != "" {
		dir = cfg.Local.DataDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.dir, dir)
		}
	}
	if dir == "" {
		c.logger.Warn("local store is in-memory; tables are discarded on exit")
	}

	store, err := ddbstore.New(ddbstore.StoreOptions{
		Path:   dir,
		Logger: c.logger.Named("ddbstore"),
		Region: cfg.AWS.Region,
	})
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, store.Close)
	c.logger.Debug("using local store", zap.String("dir", dir))
	return store, nil
}

// openSet loads the schemas of the selected tables and opens them against client.
func (c *cli) openSet(cfg Config, client ddbiface.TableAPI) (*tableset.Set, error) {
	selected, err := cfg.Select(c.tableNames)
	if err != nil {
		return nil, err
	}

	tables := make([]*table.Table, 0, len(selected))
	for _, tc := range selected {
		desc, err := schema.Load(cfg.SchemaPath(tc))
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		t, err := table.Open(tc.Name, desc, client, tc.tableConfig())
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		c.logger.Debug("loaded schema",
			zap.String("table", tc.Name),
			zap.String("title", desc.Title),
			zap.Int("properties", len(desc.Properties)),
		)
		tables = append(tables, t)
	}

	set := tableset.New(tables, tableset.WithConcurrency(cfg.Concurrency))
	names := make([]string, 0, len(set.Tables()))
	for _, t := range set.Tables() {
		names = append(names, t.Name())
	}
	c.logger.Debug("opened tables", zap.Strings("tables", names), zap.Int("concurrency", cfg.Concurrency))
	return set, nil
}
