package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/calendar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "effortplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "project.json", cfg.Workspace.File)
	assert.Equal(t, BackendDir, cfg.Library.Backend)
	s := cfg.Settings()
	assert.Equal(t, 10.0, s.BufferPercentage)
	assert.Equal(t, 1, s.TeamSize)
}

func TestLoad_FileEnvAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
defaults:
  buffer_percentage: 20
  team_size: 3
  holidays: ["2024-12-25"]
server:
  addr: ":9000"
log:
  level: debug
`)
	t.Setenv("EFFORTPLAN_DEFAULTS_TEAM_SIZE", "4")

	v, err := NewViper(path)
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", "", "")
	require.NoError(t, fs.Parse([]string{"--addr", ":7000"}))
	require.NoError(t, BindFlags(v, fs, map[string]string{"server.addr": "addr", "log.level": "missing"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Defaults.BufferPercentage)
	assert.Equal(t, 4, cfg.Defaults.TeamSize)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []calendar.Date{calendar.MustParseDate("2024-12-25")}, cfg.Settings().Holidays)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSettings_ClampsDefaults(t *testing.T) {
	cfg := Default()
	cfg.Defaults.BufferPercentage = -5
	cfg.Defaults.TeamSize = 0
	s := cfg.Settings()
	assert.Equal(t, 0.0, s.BufferPercentage)
	assert.Equal(t, 1, s.TeamSize)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Library.Backend = "s3"
	cfg.Defaults.Holidays = []string{"not-a-date"}

	errs := cfg.Validate()
	require.Len(t, errs, 3)
	assert.Contains(t, errs.Error(), "3 validation errors")
	assert.Contains(t, errs.Error(), "library.backend")
	assert.Contains(t, errs.Error(), "defaults.holidays[0]")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
}
