package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKubeFlags(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantKubeconfig string
		wantContext    string
	}{
		{name: "none", args: []string{"get", "pods"}},
		{name: "separate values", args: []string{"--kubeconfig", "/tmp/kc", "get", "pods", "--context", "staging"}, wantKubeconfig: "/tmp/kc", wantContext: "staging"},
		{name: "equals form", args: []string{"get", "--context=prod", "--kubeconfig=/tmp/kc"}, wantKubeconfig: "/tmp/kc", wantContext: "prod"},
		{name: "stops at double dash", args: []string{"exec", "pod", "--", "env", "--context", "inner"}},
		{name: "dangling flag", args: []string{"get", "--context"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kubeconfig, context := kubeFlags(tt.args)
			assert.Equal(t, tt.wantKubeconfig, kubeconfig)
			assert.Equal(t, tt.wantContext, context)
		})
	}
}

func TestKubeContext(t *testing.T) {
	t.Run("explicit context skips kubeconfig", func(t *testing.T) {
		orig := currentKubeContext
		t.Cleanup(func() { currentKubeContext = orig })
		currentKubeContext = func(string) string {
			t.Fatal("kubeconfig should not be read")
			return ""
		}
		assert.Equal(t, "staging", kubeContext([]string{"--context", "staging", "get", "pods"}))
	})

	t.Run("current context from kubeconfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		require.NoError(t, os.WriteFile(path, []byte(`apiVersion: v1
kind: Config
current-context: bastion
clusters:
- name: c
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: bastion
  context:
    cluster: c
    user: u
users:
- name: u
  user: {}
`), 0o600))
		assert.Equal(t, "bastion", kubeContext([]string{"--kubeconfig=" + path, "get", "pods"}))
	})

	t.Run("unreadable kubeconfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing")
		assert.Equal(t, "", kubeContext([]string{"--kubeconfig", path}))
	})
}
