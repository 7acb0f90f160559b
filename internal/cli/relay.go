package cli

// This file implements the token relay: ask the credential issuer for a kube token,
// embed the forwarded arguments and a correlation id in it, and hand everything to
// kubectl.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// relayMarker separates the issued token from the forwarded arguments.
	relayMarker = " bctl "
	// correlationSeparator separates the forwarded arguments from the correlation id.
	correlationSeparator = "++++"
)

// BuildCompositeToken returns the token kubectl presents to the bastion, which splits
// it back into the issued token, the command line and the correlation id.
func BuildCompositeToken(token, args, correlationID string) string {
	return token + relayMarker + args + correlationSeparator + correlationID
}

// RelayManager runs kubectl with a composite token.
type RelayManager struct {
	exec   Executor
	cfg    *CLIConfig
	logger *zap.Logger
	stdio  Stdio
	newID  func() string
}

// NewRelayManager creates a RelayManager with the given dependencies.
func NewRelayManager(exec Executor, cfg *CLIConfig, logger *zap.Logger) *RelayManager {
	if cfg == nil {
		cfg = DefaultCLIConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelayManager{
		exec:   exec,
		cfg:    cfg,
		logger: logger,
		stdio:  OSStdio(),
		newID:  uuid.NewString,
	}
}

// NewRelayCmd returns the relay root command. It has no flags of its own: every
// argument, --help included, is forwarded to kubectl.
func NewRelayCmd(mgr *RelayManager) *cobra.Command {
	return &cobra.Command{
		Use:                "bctl [kubectl arguments]",
		Short:              "Run kubectl with a bastion token",
		Long:               "bctl fetches a kube token from the credential issuer and runs kubectl with it, forwarding all arguments unchanged.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Relay(args)
		},
	}
}

// IssueToken asks the credential issuer for a kube token.
func (m *RelayManager) IssueToken() (string, error) {
	args := []string{"--configName", m.cfg.IssuerConfigName, "get-kube-token", "-s"}
	out, err := Capture(m.exec, m.cfg.IssuerPath, args, NonEmptyName(), NoControlChars())
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(out)
	if token == "" {
		return "", wrapWithSentinelAndContext(ErrEmptyToken, nil,
			fmt.Sprintf("%s printed no token; is the kube config initialized for %q?", m.cfg.IssuerPath, m.cfg.IssuerConfigName),
			map[string]any{"command": m.cfg.IssuerPath, "configName": m.cfg.IssuerConfigName})
	}
	return token, nil
}

// Relay issues a token and runs kubectl with it followed by args verbatim.
// kubectl's exit status is returned as ErrChildExited.
func (m *RelayManager) Relay(args []string) error {
	token, err := m.IssueToken()
	if err != nil {
		return err
	}

	correlationID := m.newID()
	composite := BuildCompositeToken(token, strings.Join(args, " "), correlationID)

	if m.logger.Core().Enabled(zap.DebugLevel) {
		m.logger.Debug("Relaying to kubectl",
			zap.String("correlationId", correlationID),
			zap.String("kubectl", m.cfg.KubectlPath),
			zap.String("kube.context", kubeContext(args)),
			zap.Strings("args", args),
		)
	}

	kubectlArgs := append([]string{"--token", composite}, args...)
	return Forward(m.exec, m.cfg.KubectlPath, kubectlArgs, m.stdio, NonEmptyName())
}
