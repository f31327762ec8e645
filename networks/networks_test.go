package networks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGetNetworkByNameAndAlias(t *testing.T) {
	for _, name := range []string{"mainnet", "ethereum", " Mainnet "} {
		n, err := GetNetwork(name)
		if err != nil {
			t.Fatalf("GetNetwork(%q): %s", name, err)
		}
		if n.GetChainID() != 1 {
			t.Errorf("GetNetwork(%q).GetChainID() = %d, want 1", name, n.GetChainID())
		}
	}
	if _, err := GetNetwork("nope"); !errors.Is(err, ErrNetworkNotFound) {
		t.Errorf("GetNetwork(nope) err = %v, want ErrNetworkNotFound", err)
	}
	if n, err := GetNetworkByID(56); err != nil || n.GetName() != "bsc" {
		t.Errorf("GetNetworkByID(56) = %v, %v", n, err)
	}
}

func TestNodesPrecedence(t *testing.T) {
	n := NewGenericNetwork(GenericNetworkConfig{
		Name:             "testnet",
		ChainID:          31337,
		NodeVariableName: "ALLOWANCE_TEST_NODE",
		DefaultNodes:     map[string]string{"default": "http://default"},
	})

	t.Setenv("ALLOWANCE_TEST_NODE", "")
	if got := Nodes(n, ""); got["default"] != "http://default" || len(got) != 1 {
		t.Errorf("default nodes = %v", got)
	}

	t.Setenv("ALLOWANCE_TEST_NODE", "http://env")
	if got := Nodes(n, ""); got["ALLOWANCE_TEST_NODE"] != "http://env" || len(got) != 1 {
		t.Errorf("env nodes = %v", got)
	}

	if got := Nodes(n, "http://flag"); got["custom-node"] != "http://flag" || len(got) != 1 {
		t.Errorf("override nodes = %v", got)
	}
}

func TestCustomNetworksOverrideBuiltins(t *testing.T) {
	dir := t.TempDir()
	custom := `{"name": "mainnet", "chain_id": 1, "native_token_symbol": "ETH",
		"node_variable_name": "MY_NODE", "default_nodes": {"mine": "http://localhost:8545"}}`
	if err := os.WriteFile(filepath.Join(dir, "mainnet.json"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	nws := newSupportedNetworks(supportedNetworks, dir)
	n, err := nws.getNetwork("mainnet")
	if err != nil {
		t.Fatal(err)
	}
	if n.GetDefaultNodes()["mine"] != "http://localhost:8545" {
		t.Errorf("custom mainnet not loaded: %v", n.GetDefaultNodes())
	}
	if _, err := nws.getNetwork("bsc"); err != nil {
		t.Errorf("builtin bsc lost: %s", err)
	}
}

func TestSaveNetworkIsLoadedAgain(t *testing.T) {
	dir := t.TempDir()
	nws := newSupportedNetworks(supportedNetworks, dir)

	n, err := NewNetworkFromJSON([]byte(`{"name": "Sepolia", "alternative_names": ["sep"], "chain_id": 11155111,
		"native_token_symbol": "ETH", "native_token_decimal": 18, "node_variable_name": "SEPOLIA_NODE"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := nws.save(n); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sepolia.json")); err != nil {
		t.Fatalf("network file not written: %s", err)
	}
	if _, err := nws.getNetwork("sep"); err != nil {
		t.Errorf("saved network not registered: %s", err)
	}

	reloaded := newSupportedNetworks(supportedNetworks, dir)
	got, err := reloaded.getNetworkByID(11155111)
	if err != nil {
		t.Fatal(err)
	}
	if got.GetNodeVariableName() != "SEPOLIA_NODE" {
		t.Errorf("node var = %q", got.GetNodeVariableName())
	}

	all := reloaded.all()
	if len(all) != len(supportedNetworks)+1 {
		t.Errorf("all() returned %d networks", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].GetChainID() >= all[i].GetChainID() {
			t.Errorf("networks not ordered by chain id")
		}
	}
}
