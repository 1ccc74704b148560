package cmd

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/sarchlab/datagen/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the settings shared by all commands.
type Config struct {
	Seed        uint64 `mapstructure:"seed"`
	Count       int    `mapstructure:"count"`
	Format      string `mapstructure:"format"`
	Workers     int    `mapstructure:"workers"`
	Record      bool   `mapstructure:"record"`
	RecordFile  string `mapstructure:"record-file"`
	Monitor     bool   `mapstructure:"monitor"`
	MonitorPort int    `mapstructure:"monitor-port"`
	OpenBrowser bool   `mapstructure:"open-browser"`
	LogLevel    string `mapstructure:"log-level"`
	LogJSON     bool   `mapstructure:"log-json"`

	// Seeded tells whether a seed was given. Without one every run differs.
	Seeded bool `mapstructure:"-"`
}

// The output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type app struct {
	v      *viper.Viper
	cfg    Config
	logger *zap.Logger
}

func newApp() *app {
	return &app{v: viper.New(), logger: zap.NewNop()}
}

func (a *app) registerFlags(root *cobra.Command) {
	f := root.PersistentFlags()

	f.String("config", "", "config file (default ./datagen.yaml)")
	f.Uint64("seed", 0, "seed of all random streams")
	f.IntP("count", "n", 10, "number of values to emit, 0 drains the generator")
	f.StringP("format", "f", FormatText, "output format: text, json or yaml")
	f.Int("workers", 1, "number of workers pulling values concurrently")
	f.Bool("record", false, "record the products into a sqlite database")
	f.String("record-file", "", "database path without extension (default generated)")
	f.Bool("monitor", false, "serve the generator monitor while generating")
	f.Int("monitor-port", 0, "port of the monitor (default random)")
	f.Bool("open-browser", false, "open the monitor in a browser")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
	f.Bool("log-json", false, "log in json")
}

// load merges .env, the config file, the environment and the flags, in
// increasing precedence.
func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}

	v := a.v
	v.SetEnvPrefix("DATAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if err := a.readConfigFile(); err != nil {
		return err
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return errors.Wrap(err, "decode configuration")
	}

	a.cfg.Seeded = v.IsSet("seed")

	if err := a.cfg.validate(); err != nil {
		return err
	}

	logger, err := logging.New(a.cfg.LogLevel, a.cfg.LogJSON)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}

	a.logger = logger

	return nil
}

func (a *app) readConfigFile() error {
	path := a.v.GetString("config")

	if path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("datagen")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}

	err := a.v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}

	return errors.Wrap(err, "read config file")
}

func (a *app) sync() {
	_ = a.logger.Sync()
}

func (c Config) validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Newf("unknown format %q", c.Format)
	}

	if c.Count < 0 {
		return errors.Newf("count must not be negative, got %d", c.Count)
	}

	if c.Workers < 1 {
		return errors.Newf("workers must be positive, got %d", c.Workers)
	}

	return nil
}
