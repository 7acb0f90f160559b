package cli

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixedCorrelationID = "11111111-1111-1111-1111-111111111111"

func TestBuildCompositeToken(t *testing.T) {
	got := BuildCompositeToken("abc", "get pods", fixedCorrelationID)
	assert.Equal(t, "abc bctl get pods++++11111111-1111-1111-1111-111111111111", got)

	assert.Equal(t, "abc bctl ++++"+fixedCorrelationID, BuildCompositeToken("abc", "", fixedCorrelationID))
}

func newTestRelay(mock *MockExecutor) *RelayManager {
	mgr := NewRelayManager(mock, DefaultCLIConfig(), zap.NewNop())
	mgr.newID = func() string { return fixedCorrelationID }
	mgr.stdio = Stdio{}
	return mgr
}

func TestRelayManager_Relay(t *testing.T) {
	t.Run("issues token and forwards args", func(t *testing.T) {
		mock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if spec.Name == "zli" {
					return &MockCommand{OutputData: []byte("  abc\n")}
				}
				return nil
			},
		}
		mgr := newTestRelay(mock)

		require.NoError(t, mgr.Relay([]string{"get", "pods"}))
		require.Len(t, mock.Commands, 2)

		issuer := mock.Commands[0]
		assert.Equal(t, "zli", issuer.Name)
		assert.Equal(t, []string{"--configName", "dev", "get-kube-token", "-s"}, issuer.Args)

		kubectl := mock.Commands[1]
		assert.Equal(t, "kubectl", kubectl.Name)
		assert.Equal(t, []string{
			"--token", "abc bctl get pods++++" + fixedCorrelationID,
			"get", "pods",
		}, kubectl.Args)
	})

	t.Run("uses configured executables", func(t *testing.T) {
		mock := &MockExecutor{DefaultOutput: []byte("tok")}
		cfg := DefaultCLIConfig()
		cfg.IssuerPath = "/opt/zli/bin/zli-macos"
		cfg.IssuerConfigName = "stage"
		cfg.KubectlPath = "/usr/local/bin/kubectl"
		mgr := NewRelayManager(mock, cfg, zap.NewNop())
		mgr.stdio = Stdio{}

		require.NoError(t, mgr.Relay([]string{"version"}))
		assert.Equal(t, "/opt/zli/bin/zli-macos", mock.Commands[0].Name)
		assert.Equal(t, "stage", mock.Commands[0].Args[1])
		assert.Equal(t, "/usr/local/bin/kubectl", mock.LastCommand().Name)
	})

	t.Run("passes flag-like args verbatim", func(t *testing.T) {
		mock := &MockExecutor{DefaultOutput: []byte("tok")}
		mgr := newTestRelay(mock)

		args := []string{"--help", "-n", "kube-system", "logs", "-f", "pod/x", "--", "sh", "-c", "echo $HOME"}
		require.NoError(t, mgr.Relay(args))
		got := mock.LastCommand().Args
		assert.Equal(t, args, got[2:])
		assert.Equal(t, "tok bctl --help -n kube-system logs -f pod/x -- sh -c echo $HOME++++"+fixedCorrelationID, got[1])
	})

	t.Run("issuer failure aborts before kubectl", func(t *testing.T) {
		issuerErr := errors.New("boom")
		mock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				return &MockCommand{OutputErr: issuerErr}
			},
		}
		mgr := newTestRelay(mock)

		err := mgr.Relay([]string{"get", "pods"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSubprocessFailed))
		assert.True(t, errors.Is(err, issuerErr))
		assert.Len(t, mock.Commands, 1)
	})

	t.Run("empty token aborts before kubectl", func(t *testing.T) {
		mock := &MockExecutor{DefaultOutput: []byte(" \n")}
		mgr := newTestRelay(mock)

		err := mgr.Relay([]string{"get", "pods"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyToken))
		assert.Len(t, mock.Commands, 1)
	})

	t.Run("kubectl run failure is returned", func(t *testing.T) {
		runErr := errors.New("broken pipe")
		mock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if spec.Name == "kubectl" {
					return &MockCommand{RunErr: runErr}
				}
				return &MockCommand{OutputData: []byte("tok")}
			},
		}
		mgr := newTestRelay(mock)

		err := mgr.Relay(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, runErr))
	})
}

func TestRelayManager_CorrelationIDsAreUnique(t *testing.T) {
	mock := &MockExecutor{DefaultOutput: []byte("tok")}
	mgr := NewRelayManager(mock, DefaultCLIConfig(), zap.NewNop())
	mgr.stdio = Stdio{}

	require.NoError(t, mgr.Relay([]string{"get", "pods"}))
	require.NoError(t, mgr.Relay([]string{"get", "pods"}))

	first := correlationID(t, mock.Commands[1].Args[1])
	second := correlationID(t, mock.Commands[3].Args[1])
	assert.NotEqual(t, first, second)
}

func correlationID(t *testing.T, composite string) uuid.UUID {
	t.Helper()
	const prefix = "tok bctl get pods++++"
	require.Greater(t, len(composite), len(prefix))
	id, err := uuid.Parse(composite[len(prefix):])
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
	assert.Len(t, composite[len(prefix):], 36)
	return id
}

func TestNewRelayCmd_ForwardsEverything(t *testing.T) {
	mock := &MockExecutor{DefaultOutput: []byte("tok")}
	cmd := NewRelayCmd(newTestRelay(mock))
	cmd.SetArgs([]string{"get", "pods", "--all-namespaces", "-o", "wide"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"get", "pods", "--all-namespaces", "-o", "wide"}, mock.LastCommand().Args[2:])
}
