package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/allowance/networks"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--config flag is supported to pass a new network config json filepath OR pass a json string. The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1", "alternative_name_2"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"node_variable_name": "MY_NETWORK_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1",
			"node_name_2": "node_url_2"
		}
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.TrimSpace(NetworkConfig)
		if raw == "" {
			return fmt.Errorf("--config is required")
		}

		content := []byte(raw)
		if !strings.HasPrefix(raw, "{") {
			// in this case, config is supposed to be a path to a json file
			var err error
			content, err = os.ReadFile(raw)
			if err != nil {
				return fmt.Errorf("couldn't read the provided json file: %w", err)
			}
		}
		newNetwork, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return fmt.Errorf("the provided json is not a valid network config: %w", err)
		}

		allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range allNames {
			if _, err := networks.GetNetwork(name); err == nil {
				if !NetworkForce {
					return fmt.Errorf("network with name %s already exists. If you want to update the network, use flag --force", name)
				}
				appUI.Warn("Network with name %s already exists. It will be replaced.", name)
			}
		}

		if err := networks.AddNetwork(newNetwork); err != nil {
			return fmt.Errorf("failed to add the new network: %w", err)
		}
		appUI.Success("Network %s with chain ID %d added and saved to ~/.allowance/networks/.", newNetwork.GetName(), newNetwork.GetChainID())
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		rows := [][]string{}
		for _, n := range networks.GetSupportedNetworks() {
			nodes := networks.Nodes(n, "")
			names := make([]string, 0, len(nodes))
			for name := range nodes {
				names = append(names, name)
			}
			sort.Strings(names)
			rows = append(rows, []string{
				n.GetName(),
				fmt.Sprintf("%d", n.GetChainID()),
				n.GetNodeVariableName(),
				strings.Join(names, ", "),
			})
		}
		appUI.Table([]string{"Network", "Chain ID", "Node env var", "Nodes"}, rows)
		appUI.Info("To add a network: allowance network add --config <file or json>")
		appUI.Info("To delete one, remove its json file in ~/.allowance/networks/.")
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks allowance reads tokens from",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "config", "c", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "Replace a network that already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
