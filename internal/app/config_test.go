package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/language"
)

const sampleConfig = `
telegram:
  token: "yaml-token"
  admin_id: 42
database:
  host: db.local
  name: shop
cache:
  ttl_seconds: 30
languages:
  default: 2
  list:
    - {id: 1, code: ru, picker_key: set_russian}
    - {id: 2, code: uz, picker_key: set_uzbek}
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", " 127.0.0.1:6379 ")
	t.Setenv("DB_PORT", "6432")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	require.Equal(t, "yaml-token", cfg.Telegram.Token)
	require.Equal(t, int64(42), cfg.CoreConfig().Telegram.AdminID)
	require.Equal(t, "longpoll", cfg.Telegram.RunMode)
	require.Equal(t, "6432", cfg.Database.Port)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, "127.0.0.1:6379", cfg.Cache.Addr)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL())
	require.Equal(t, "locales", cfg.Locales.Dir)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	require.Equal(t, 2, int(reg.Default()))
}

func TestLoadConfigDefaultLanguages(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
telegram: {token: t}
database: {host: h, name: n}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Languages.List, 2)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL())

	reg, err := cfg.Registry()
	require.NoError(t, err)
	require.Equal(t, 1, int(reg.Default()))
	require.True(t, reg.IsSupported(2))
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing token":   "database: {host: h, name: n}\n",
		"missing db host": "telegram: {token: t}\ndatabase: {name: n}\n",
		"negative db":     "telegram: {token: t}\ndatabase: {host: h, name: n}\ncache: {db: -1}\n",
		"webhook no url":  "telegram: {token: t, run_mode: webhook}\ndatabase: {host: h, name: n}\n",
		"malformed yaml":  "telegram: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestRegistryRejectsUnknownDefault(t *testing.T) {
	cfg := &Config{Languages: LanguagesConfig{Default: 9}}
	cfg.Languages.List = []language.Spec{{ID: 1, Code: "ru", PickerKey: "set_russian"}}
	_, err := cfg.Registry()
	require.Error(t, err)
}
