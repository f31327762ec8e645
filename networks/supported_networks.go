package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	BSCMainnet,
	Matic,
	ArbitrumMainnet,
	OptimismMainnet,
	BaseMainnet,
}

var globalSupportedNetworks = newSupportedNetworks(supportedNetworks, customNetworksDir())
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
	customDir    string
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	res, found := n.networks[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) add(network Network) {
	n.networks[strings.ToLower(network.GetName())] = network
	n.networksByID[network.GetChainID()] = network
	for _, an := range network.GetAlternativeNames() {
		n.networks[strings.ToLower(an)] = network
	}
}

func newSupportedNetworks(builtin []Network, customDir string) *networks {
	result := networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
		customDir:    customDir,
	}
	for _, n := range builtin {
		for _, name := range append([]string{n.GetName()}, n.GetAlternativeNames()...) {
			if _, found := result.networks[strings.ToLower(name)]; found {
				panic(
					fmt.Errorf("network with name or alternative name of '%s' already exists", name),
				)
			}
		}
		result.add(n)
	}

	// custom networks override built-in ones with the same name or id
	customNetworks, err := loadCustomNetworks(customDir)
	if err != nil {
		return &result
	}
	for _, n := range customNetworks {
		result.add(n)
	}
	return &result
}

func customNetworksDir() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".allowance", "networks")
}

func loadCustomNetworks(dir string) ([]Network, error) {
	if dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			// skip the broken one, keep the others
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	return NewGenericNetwork(networkConfig), nil
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

// GetSupportedNetworkNames lists every primary and alternative name, sorted.
func GetSupportedNetworkNames() []string {
	res := []string{}
	for name := range globalSupportedNetworks.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) all() []Network {
	res := []Network{}
	for _, network := range n.networksByID {
		res = append(res, network)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].GetChainID() < res[j].GetChainID()
	})
	return res
}

// save writes network to the custom networks dir and registers it.
func (n *networks) save(network Network) error {
	if n.customDir == "" {
		return fmt.Errorf("no custom networks dir")
	}
	config := GenericNetworkConfig{
		Name:               network.GetName(),
		AlternativeNames:   network.GetAlternativeNames(),
		ChainID:            network.GetChainID(),
		NativeTokenSymbol:  network.GetNativeTokenSymbol(),
		NativeTokenDecimal: network.GetNativeTokenDecimal(),
		NodeVariableName:   network.GetNodeVariableName(),
		DefaultNodes:       network.GetDefaultNodes(),
	}
	content, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(n.customDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", n.customDir, err)
	}
	file := filepath.Join(n.customDir, strings.ToLower(config.Name)+".json")
	if err := os.WriteFile(file, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	n.add(network)
	return nil
}

// GetSupportedNetworks returns each supported network once, ordered by chain
// id.
func GetSupportedNetworks() []Network {
	return globalSupportedNetworks.all()
}

// AddNetwork saves network to ~/.allowance/networks so later runs load it.
func AddNetwork(network Network) error {
	return globalSupportedNetworks.save(network)
}
