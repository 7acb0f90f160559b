package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEnv replaces the environment and home directory seams for one test.
func stubEnv(t *testing.T, env map[string]string, home string) {
	t.Helper()
	origLookup, origHome := lookupEnv, userHomeDir
	t.Cleanup(func() {
		lookupEnv, userHomeDir = origLookup, origHome
	})
	lookupEnv = func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
	userHomeDir = func() (string, error) {
		if home == "" {
			return "", errors.New("no home")
		}
		return home, nil
	}
}

func writeSettings(t *testing.T, home, content string) string {
	t.Helper()
	dir := filepath.Join(home, ".bctl")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCLIConfig_Defaults(t *testing.T) {
	stubEnv(t, nil, t.TempDir())

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultCLIConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCLIConfig_NoHomeDir(t *testing.T) {
	stubEnv(t, nil, "")

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "kubectl", cfg.KubectlPath)
}

func TestLoadCLIConfig_SettingsFile(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, `
kubectl: /opt/bin/kubectl
issuer: /opt/bin/zli
issuerConfigName: stage
thoum: ./bin/thoum
debug: true
`)
	stubEnv(t, nil, home)

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	want := &CLIConfig{
		KubectlPath:      "/opt/bin/kubectl",
		IssuerPath:       "/opt/bin/zli",
		IssuerConfigName: "stage",
		ZliPath:          "zli",
		ThoumPath:        "./bin/thoum",
		Debug:            true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCLIConfig_EnvOverridesSettings(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, "kubectl: /opt/bin/kubectl\nzli: /opt/bin/zli\n")
	stubEnv(t, map[string]string{
		EnvKubectl:          "/usr/local/bin/kubectl",
		EnvIssuerConfigName: "prod",
		EnvZli:              "   ",
		EnvDebug:            "1",
	}, home)

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/kubectl", cfg.KubectlPath)
	assert.Equal(t, "prod", cfg.IssuerConfigName)
	assert.Equal(t, "/opt/bin/zli", cfg.ZliPath, "blank env value keeps the settings value")
	assert.True(t, cfg.Debug)
}

func TestLoadCLIConfig_ExplicitSettingsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("issuer: /elsewhere/zli\n"), 0o600))
	stubEnv(t, map[string]string{EnvSettings: path}, t.TempDir())

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/zli", cfg.IssuerPath)
}

func TestLoadCLIConfig_Errors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		home := t.TempDir()
		writeSettings(t, home, "kubectl: [unterminated\n")
		stubEnv(t, nil, home)

		_, err := LoadCLIConfig()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLoadSettingsFailed))
		assert.Contains(t, err.Error(), "settings.yaml")
	})

	t.Run("settings path is a directory", func(t *testing.T) {
		stubEnv(t, map[string]string{EnvSettings: t.TempDir()}, "")

		_, err := LoadCLIConfig()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLoadSettingsFailed))
	})

	t.Run("invalid debug value", func(t *testing.T) {
		stubEnv(t, map[string]string{EnvDebug: "loud"}, t.TempDir())

		_, err := LoadCLIConfig()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSetting))
		assert.Contains(t, err.Error(), EnvDebug)
	})
}

func TestLoadCLIConfig_DebugFalseOverridesSettings(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, "debug: true\n")
	stubEnv(t, map[string]string{EnvDebug: "false"}, home)

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}
