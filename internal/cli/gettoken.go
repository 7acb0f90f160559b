package cli

// This file implements the dev-tool credential inspector: ask the wrapped tool where
// its config lives, then print the id token and session id stored there.

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bctl-devtools/pkg/banner"
	"bctl-devtools/pkg/credential"
)

// ConfigNames are the credential environments the wrapped tools know.
var ConfigNames = []string{"prod", "stage", "dev"}

const defaultConfigName = "prod"

// DevTool describes a wrapped developer CLI.
type DevTool struct {
	// Name is the tool's executable name and flag prefix, e.g. "zli" gives --zli-path.
	Name string
	// Format is the banner layout the tool's `config` subcommand prints.
	Format banner.Format
	// Path returns the configured executable for the tool.
	Path func(*CLIConfig) string
}

// The banner formats differ per tool; each tool keeps the one its `config` output uses.
var (
	ZliTool = DevTool{
		Name:   "zli",
		Format: banner.Wrapped,
		Path:   func(c *CLIConfig) string { return c.ZliPath },
	}
	ThoumTool = DevTool{
		Name:   "thoum",
		Format: banner.FirstLine,
		Path:   func(c *CLIConfig) string { return c.ThoumPath },
	}
)

// GetTokenOptions are the inputs of a get-token run.
type GetTokenOptions struct {
	// ToolPath overrides the configured executable when set.
	ToolPath   string
	ConfigName string
	// ConfigFile skips the banner lookup when set.
	ConfigFile string
	// BannerFormat overrides the tool's banner format by name.
	BannerFormat string
}

// GetTokenManager reads credentials for one DevTool.
type GetTokenManager struct {
	tool    DevTool
	exec    Executor
	cfg     *CLIConfig
	printer *Printer
	logger  *zap.Logger
}

// NewGetTokenManager creates a GetTokenManager with the given dependencies.
func NewGetTokenManager(tool DevTool, exec Executor, cfg *CLIConfig, printer *Printer, logger *zap.Logger) *GetTokenManager {
	if cfg == nil {
		cfg = DefaultCLIConfig()
	}
	if printer == nil {
		printer = NewPrinter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GetTokenManager{tool: tool, exec: exec, cfg: cfg, printer: printer, logger: logger}
}

// NewDevToolCmd returns the root command of a dev-tool binary.
func NewDevToolCmd(mgr *GetTokenManager) *cobra.Command {
	var getToken bool
	var debug bool
	opts := GetTokenOptions{}
	name := mgr.tool.Name

	cmd := &cobra.Command{
		Use:           name + "-dev",
		Short:         name + " dev scripts",
		Long:          fmt.Sprintf("Developer helpers for %s.\n\nEnsure your dev serviceUrl is set and run `%s --configName dev login` first.", name, name),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			SetDebugMode(debug || mgr.cfg.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !getToken {
				mgr.logger.Debug("No action requested")
				return nil
			}
			_, err := mgr.GetToken(opts)
			return err
		},
	}

	cmd.Flags().BoolVar(&getToken, "get-token", false, fmt.Sprintf("Get Id Token and Session Id from %s dev config json", name))
	cmd.Flags().StringVar(&opts.ToolPath, name+"-path", "", fmt.Sprintf("Custom path to use for %s executable", name))
	cmd.Flags().StringVar(&opts.ConfigName, "configName", defaultConfigName, "Config file to use ["+strings.Join(ConfigNames, ", ")+"]")
	cmd.Flags().StringVar(&opts.ConfigFile, "config-file", "", fmt.Sprintf("Read this config file instead of asking %s for its location", name))
	cmd.Flags().StringVar(&opts.BannerFormat, "banner-format", "", "Banner format of the config output ["+strings.Join(banner.Names(), ", ")+"], defaults to the one "+name+" prints")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")

	return cmd
}

// GetToken resolves the tool's config file, reads its credentials and prints them.
func (m *GetTokenManager) GetToken(opts GetTokenOptions) (credential.Record, error) {
	configName, err := validateConfigName(opts.ConfigName)
	if err != nil {
		return credential.Record{}, err
	}

	format, err := m.format(opts.BannerFormat)
	if err != nil {
		return credential.Record{}, err
	}

	path := strings.TrimSpace(opts.ConfigFile)
	if path == "" {
		path, err = m.ConfigPath(m.toolPath(opts.ToolPath), configName, format)
		if err != nil {
			return credential.Record{}, err
		}
	}
	m.logger.Debug("Reading config file", zap.String("tool", m.tool.Name), zap.String("path", path))

	reader := credential.Reader{LoginCommand: fmt.Sprintf("%s --configName %s login", m.tool.Name, configName)}
	rec, err := reader.Read(path)
	if err != nil {
		return credential.Record{}, err
	}
	if err := m.printer.Credential(rec); err != nil {
		return credential.Record{}, err
	}
	return rec, nil
}

// ConfigPath runs `<tool> config --configName <name>` and extracts the config path
// from its banner.
func (m *GetTokenManager) ConfigPath(toolPath, configName string, format banner.Format) (string, error) {
	out, err := Capture(m.exec, toolPath, []string{"config", "--configName", configName}, NonEmptyName(), NoControlChars())
	if err != nil {
		return "", err
	}
	path, err := format.Extract(out)
	if err != nil {
		return "", err
	}
	return path, nil
}

// format returns the banner format named by override, or the tool's own.
func (m *GetTokenManager) format(override string) (banner.Format, error) {
	if strings.TrimSpace(override) == "" {
		return m.tool.Format, nil
	}
	return banner.Lookup(override)
}

func (m *GetTokenManager) toolPath(override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if m.tool.Path != nil {
		if path := m.tool.Path(m.cfg); path != "" {
			return path
		}
	}
	return m.tool.Name
}

func validateConfigName(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, known := range ConfigNames {
		if name == known {
			return name, nil
		}
	}
	return "", wrapWithSentinelAndContext(ErrUnknownConfigName, nil,
		fmt.Sprintf("unknown config name %q, expected one of %s", name, strings.Join(ConfigNames, ", ")),
		map[string]any{"configName": name})
}
