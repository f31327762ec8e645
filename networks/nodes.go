package networks

import (
	"os"
	"strings"
)

// Nodes returns the RPC endpoints to use for n. An explicit override wins,
// then the network's node env var, then its default nodes.
func Nodes(n Network, override string) map[string]string {
	if override = strings.TrimSpace(override); override != "" {
		return map[string]string{"custom-node": override}
	}
	if v := strings.TrimSpace(os.Getenv(n.GetNodeVariableName())); v != "" {
		return map[string]string{n.GetNodeVariableName(): v}
	}
	result := map[string]string{}
	for name, url := range n.GetDefaultNodes() {
		result[name] = url
	}
	return result
}
