package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 64, cfg.Engine.MaxResults)
	assert.Zero(t, cfg.Engine.Workers)
	assert.Zero(t, cfg.Engine.ProviderTimeoutMs, "provider timeout is opt-in")

	assert.Equal(t, 0.55, cfg.Fuzzy.DensityWeight)
	assert.Equal(t, 0.25, cfg.Fuzzy.ConsecutiveWeight)
	assert.Equal(t, 0.10, cfg.Fuzzy.LengthWeight)
	assert.Equal(t, 0.08, cfg.Fuzzy.StartBonus)
	assert.Equal(t, 0.60, cfg.Fuzzy.Floor)
	assert.Equal(t, 0.84, cfg.Fuzzy.Cap)

	assert.Equal(t, 24, cfg.CLI.DefaultLimit)

	require.Len(t, cfg.Prefixes, 2)
	assert.Equal(t, "a", cfg.Prefixes[0].Trigger)
	assert.Equal(t, "apps", cfg.Prefixes[0].Provider)
	assert.Equal(t, "calc", cfg.Prefixes[1].Trigger)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
[engine]
workers = 8
provider_timeout_ms = 150

[fuzzy]
floor = 0.7

[cli]
default_limit = 10

[[prefix]]
trigger = "c"
provider = "clipboard"
title = "Clipboard"

[[app]]
name = "QQ Music"
path = "/apps/qqmusic"
alias_extra = ["qq"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, 150, cfg.Engine.ProviderTimeoutMs)
	assert.Equal(t, 64, cfg.Engine.MaxResults, "unset key keeps its default")

	assert.Equal(t, 0.7, cfg.Fuzzy.Floor)
	assert.Equal(t, 0.55, cfg.Fuzzy.DensityWeight)

	assert.Equal(t, 10, cfg.CLI.DefaultLimit)

	require.Len(t, cfg.Prefixes, 1, "prefix rows in the file replace the defaults")
	assert.Equal(t, "clipboard", cfg.Prefixes[0].Provider)

	require.Len(t, cfg.Apps, 1)
	assert.Equal(t, "QQ Music", cfg.Apps[0].Name)
	assert.Equal(t, []string{"qq"}, cfg.Apps[0].AliasExtra)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// The workers value has the wrong type, so strict decoding fails; the
	// recovery pass still salvages the well-typed keys around it.
	path := writeConfigFile(t, `
[engine]
workers = "eight"
max_results = 32

[fuzzy]
cap = 0.95
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Engine.Workers, "bad key falls back to its default")
	assert.Equal(t, 32, cfg.Engine.MaxResults)
	assert.Equal(t, 0.95, cfg.Fuzzy.Cap)
}

func TestLoadConfigUnparseableFallsBackToDefaults(t *testing.T) {
	path := writeConfigFile(t, "[engine\nworkers = %%%")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	// A second init reads the file it just wrote.
	again, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, again.Engine)
	assert.Equal(t, cfg.Fuzzy, again.Fuzzy)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Engine.Workers = 4
	cfg.Fuzzy.Cap = 0.9
	cfg.Apps = []AppConfig{{Name: "WeChat", Path: "/apps/wechat", AliasInitials: []string{"wx"}}}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Engine.Workers)
	assert.Equal(t, 0.9, loaded.Fuzzy.Cap)
	require.Len(t, loaded.Apps, 1)
	assert.Equal(t, []string{"wx"}, loaded.Apps[0].AliasInitials)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfigFile(t, `
[cli]
default_limit = 3
`)

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}
