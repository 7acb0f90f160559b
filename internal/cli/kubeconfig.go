package cli

import (
	"strings"

	"k8s.io/client-go/tools/clientcmd"
)

// kubeContext returns the kubeconfig context kubectl will use for args: an explicit
// --context wins, otherwise the current-context of the kubeconfig selected by
// --kubeconfig or the default loading rules. It returns "" when nothing can be read.
func kubeContext(args []string) string {
	kubeconfig, context := kubeFlags(args)
	if context != "" {
		return context
	}
	return currentKubeContext(kubeconfig)
}

// currentKubeContext is a test seam over the kubeconfig loader.
var currentKubeContext = func(explicitPath string) string {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = explicitPath
	raw, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).RawConfig()
	if err != nil {
		return ""
	}
	return raw.CurrentContext
}

// kubeFlags picks --kubeconfig and --context out of kubectl arguments, stopping at "--".
func kubeFlags(args []string) (kubeconfig, context string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		for _, name := range []string{"--kubeconfig", "--context"} {
			var value string
			switch {
			case arg == name && i+1 < len(args):
				value = args[i+1]
			case strings.HasPrefix(arg, name+"="):
				value = strings.TrimPrefix(arg, name+"=")
			default:
				continue
			}
			if name == "--kubeconfig" {
				kubeconfig = value
			} else {
				context = value
			}
		}
	}
	return kubeconfig, context
}
