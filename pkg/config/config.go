package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/clickhouse"
	"github.com/pseudomuto/sqlfixture/pkg/consts"
	"github.com/pseudomuto/sqlfixture/pkg/format"
	"gopkg.in/yaml.v3"
)

type (
	// ClickHouse configures the optional engine validation step of `check`.
	//
	// When DSN is set, the canonical text of every query is sent to that server
	// with EXPLAIN SYNTAX. When Docker is set instead, a disposable server of
	// the given Version is started for the run.
	ClickHouse struct {
		DSN    string `yaml:"dsn,omitempty"`
		Docker bool   `yaml:"docker,omitempty"`

		// Version is the clickhouse-server image tag used with Docker.
		Version string `yaml:"version,omitempty"`

		// ConfigDir is mounted into the container as config.d when set.
		ConfigDir string `yaml:"config_dir,omitempty"`

		TLS clickhouse.TLSSettings `yaml:"tls,omitempty"`
	}

	// Format holds the options of the `fmt` command.
	Format struct {
		IndentSize        int   `yaml:"indent_size,omitempty"`
		LowercaseKeywords bool  `yaml:"lowercase_keywords,omitempty"`
		AlignColumns      *bool `yaml:"align_columns,omitempty"`
	}

	// Config is the content of sqlfixture.yaml.
	Config struct {
		// Fixtures lists glob patterns of fixture files checked when no paths
		// are given on the command line.
		Fixtures []string `yaml:"fixtures,omitempty"`

		// Reparse controls whether canonical text is parsed a second time.
		// Defaults to true.
		Reparse *bool `yaml:"reparse,omitempty"`

		Format     Format     `yaml:"format,omitempty"`
		ClickHouse ClickHouse `yaml:"clickhouse,omitempty"`
	}
)

// Default returns the configuration used when no sqlfixture.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Unset fields take their defaults: fixtures are found with
// consts.DefaultFixtureGlob and docker-backed validation runs
// consts.DefaultClickHouseVersion.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	fixtures:
//	  - testdata/*.sqltest
//	clickhouse:
//	  docker: true
//	`))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.FixturePatterns())
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// LoadDir loads sqlfixture.yaml from dir. When the file does not exist the
// defaults are returned, so every command can run without a config file.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, consts.ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadConfigFile(path)
}

// FixturePatterns returns the configured fixture globs.
func (c *Config) FixturePatterns() []string {
	if len(c.Fixtures) == 0 {
		return []string{consts.DefaultFixtureGlob}
	}

	return c.Fixtures
}

// ShouldReparse reports whether canonical text should be parsed again.
func (c *Config) ShouldReparse() bool {
	return c.Reparse == nil || *c.Reparse
}

// ValidationEnabled reports whether queries are sent to a ClickHouse server.
func (c *Config) ValidationEnabled() bool {
	return c.ClickHouse.DSN != "" || c.ClickHouse.Docker
}

// GetFormatter returns the formatter used by the fmt command.
func (c *Config) GetFormatter() *format.Formatter {
	opts := format.Pretty
	if c.Format.IndentSize > 0 {
		opts.IndentSize = c.Format.IndentSize
	}
	if c.Format.AlignColumns != nil {
		opts.AlignColumns = *c.Format.AlignColumns
	}
	opts.UppercaseKeywords = !c.Format.LowercaseKeywords

	return format.New(opts)
}

func (c *Config) applyDefaults() {
	if c.ClickHouse.Version == "" {
		c.ClickHouse.Version = consts.DefaultClickHouseVersion
	}
}
