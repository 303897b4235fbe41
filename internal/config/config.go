// Package config loads effortplan settings from defaults, an optional
// effortplan.yaml, EFFORTPLAN_* environment variables and bound flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

const (
	EnvPrefix = "EFFORTPLAN"
	FileName  = "effortplan"

	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Library   LibraryConfig   `mapstructure:"library"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// WorkspaceConfig locates the working project file.
type WorkspaceConfig struct {
	File string `mapstructure:"file"`
}

// DefaultsConfig holds the settings applied to plans and new estimations.
type DefaultsConfig struct {
	BufferPercentage float64  `mapstructure:"buffer_percentage"`
	TeamSize         int      `mapstructure:"team_size"`
	Holidays         []string `mapstructure:"holidays"`
}

// LibraryConfig selects where published projects are stored.
type LibraryConfig struct {
	// Backend is "dir" (one <code>.json per project) or "sqlite".
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	DBPath  string `mapstructure:"db_path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{File: "project.json"},
		Defaults: DefaultsConfig{
			BufferPercentage: domain.DefaultBufferPercentage,
			TeamSize:         domain.DefaultTeamSize,
		},
		Library: LibraryConfig{
			Backend: BackendDir,
			Dir:     "projects",
			DBPath:  filepath.Join(Dir(), "library.db"),
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers every key of Default on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("workspace.file", d.Workspace.File)
	v.SetDefault("defaults.buffer_percentage", d.Defaults.BufferPercentage)
	v.SetDefault("defaults.team_size", d.Defaults.TeamSize)
	v.SetDefault("defaults.holidays", []string{})
	v.SetDefault("library.backend", d.Library.Backend)
	v.SetDefault("library.dir", d.Library.Dir)
	v.SetDefault("library.db_path", d.Library.DBPath)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Dir returns the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + FileName
	}
	return filepath.Join(home, ".config", FileName)
}

// NewViper prepares a viper instance with defaults, environment binding and
// the config file: cfgFile when set (it must exist), otherwise the first
// effortplan.yaml found in the working directory or Dir.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	// EFFORTPLAN_LIBRARY_DB_PATH for library.db_path
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// BindFlags binds command-line flags to config keys. Flags that are not
// present in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// Settings converts the configured defaults into domain settings. Buffer and
// team size are clamped the same way imported values are.
func (c *Config) Settings() domain.Settings {
	s := domain.DefaultSettings()
	s.SetBufferPercentage(c.Defaults.BufferPercentage)
	s.SetTeamSize(c.Defaults.TeamSize)
	for _, h := range c.Defaults.Holidays {
		if d, err := calendar.ParseDate(h); err == nil {
			_ = s.AddHoliday(d)
		}
	}
	return s
}
