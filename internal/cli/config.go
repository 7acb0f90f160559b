package cli

// This file resolves tool locations and defaults. Precedence is
// flags > environment variables (BCTL_*) > settings file > built-in defaults.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Test seams for the environment and the home directory.
var (
	lookupEnv   = os.LookupEnv
	userHomeDir = os.UserHomeDir
)

const (
	defaultKubectl          = "kubectl"
	defaultIssuer           = "zli"
	defaultIssuerConfigName = "dev"
	defaultZli              = "zli"
	defaultThoum            = "thoum"
)

// Environment variables read by LoadCLIConfig.
const (
	EnvSettings         = "BCTL_SETTINGS"
	EnvKubectl          = "BCTL_KUBECTL"
	EnvIssuer           = "BCTL_ISSUER"
	EnvIssuerConfigName = "BCTL_ISSUER_CONFIG_NAME"
	EnvZli              = "BCTL_ZLI"
	EnvThoum            = "BCTL_THOUM"
	EnvDebug            = "BCTL_DEBUG"
)

// Settings is the on-disk settings file layout.
type Settings struct {
	Kubectl          string `yaml:"kubectl,omitempty"`
	Issuer           string `yaml:"issuer,omitempty"`
	IssuerConfigName string `yaml:"issuerConfigName,omitempty"`
	Zli              string `yaml:"zli,omitempty"`
	Thoum            string `yaml:"thoum,omitempty"`
	Debug            bool   `yaml:"debug,omitempty"`
}

// CLIConfig is the resolved configuration shared by the binaries.
type CLIConfig struct {
	// KubectlPath is the orchestration client the relay forwards to.
	KubectlPath string
	// IssuerPath is the credential issuer the relay asks for a token.
	IssuerPath string
	// IssuerConfigName is the --configName passed to the issuer.
	IssuerConfigName string
	ZliPath          string
	ThoumPath        string
	Debug            bool
}

// DefaultCLIConfig returns the built-in defaults.
func DefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		KubectlPath:      defaultKubectl,
		IssuerPath:       defaultIssuer,
		IssuerConfigName: defaultIssuerConfigName,
		ZliPath:          defaultZli,
		ThoumPath:        defaultThoum,
	}
}

// LoadCLIConfig resolves the configuration from the settings file and the environment.
// A missing settings file is not an error.
func LoadCLIConfig() (*CLIConfig, error) {
	cfg := DefaultCLIConfig()

	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		cfg.applySettings(settings)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func settingsPath() (string, error) {
	if path, ok := lookupEnv(EnvSettings); ok && strings.TrimSpace(path) != "" {
		return path, nil
	}
	home, err := userHomeDir()
	if err != nil {
		// no home directory means no settings file
		return "", nil
	}
	return filepath.Join(home, ".bctl", "settings.yaml"), nil
}

func loadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, nil
	}
	// #nosec G304 -- path is scoped to the user's config directory or set explicitly.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapWithSentinelAndContext(ErrLoadSettingsFailed, err,
			fmt.Sprintf("failed to read settings %s: %v", path, err), map[string]any{"path": path})
	}
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, wrapWithSentinelAndContext(ErrLoadSettingsFailed, err,
			fmt.Sprintf("failed to parse settings %s: %v", path, err), map[string]any{"path": path})
	}
	return &settings, nil
}

func (c *CLIConfig) applySettings(s *Settings) {
	setIfNotEmpty(&c.KubectlPath, s.Kubectl)
	setIfNotEmpty(&c.IssuerPath, s.Issuer)
	setIfNotEmpty(&c.IssuerConfigName, s.IssuerConfigName)
	setIfNotEmpty(&c.ZliPath, s.Zli)
	setIfNotEmpty(&c.ThoumPath, s.Thoum)
	c.Debug = c.Debug || s.Debug
}

func (c *CLIConfig) applyEnv() error {
	for name, dst := range map[string]*string{
		EnvKubectl:          &c.KubectlPath,
		EnvIssuer:           &c.IssuerPath,
		EnvIssuerConfigName: &c.IssuerConfigName,
		EnvZli:              &c.ZliPath,
		EnvThoum:            &c.ThoumPath,
	} {
		if value, ok := lookupEnv(name); ok {
			setIfNotEmpty(dst, value)
		}
	}
	if value, ok := lookupEnv(EnvDebug); ok && strings.TrimSpace(value) != "" {
		debug, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return wrapWithSentinelAndContext(ErrInvalidSetting, err,
				fmt.Sprintf("%s must be a boolean, got %q", EnvDebug, value), map[string]any{"env": EnvDebug})
		}
		c.Debug = debug
	}
	return nil
}

func setIfNotEmpty(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
