package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tranvictor/allowance/assets"
	"github.com/tranvictor/allowance/config"
	"github.com/tranvictor/allowance/db"
	"github.com/tranvictor/allowance/networks"
	"github.com/tranvictor/allowance/symbol"
	"github.com/tranvictor/allowance/util/cache"
	"github.com/tranvictor/allowance/util/reader"
)

const (
	exitFailure        = 1
	exitInvalidRequest = 2
)

// errUnsafeRequest marks a request that can't be displayed safely.
var errUnsafeRequest = errors.New("cannot display this request safely")

func exitCode(err error) int {
	if errors.Is(err, errUnsafeRequest) {
		return exitInvalidRequest
	}
	return exitFailure
}

// currentNetwork resolves --network as a network name or a chain id.
func currentNetwork() (networks.Network, error) {
	name := strings.TrimSpace(config.Network)
	if id, err := strconv.ParseUint(name, 10, 64); err == nil {
		return networks.GetNetworkByID(id)
	}
	n, err := networks.GetNetwork(name)
	if err != nil {
		return nil, fmt.Errorf("%w. Supported networks: %v", err, networks.GetSupportedNetworkNames())
	}
	return n, nil
}

// ethReader has no nodes when the network defines none and no override is
// set. Calls then fail with reader.ErrNoNodes.
func ethReader(n networks.Network) *reader.EthReader {
	return reader.NewEthReaderGeneric(networks.Nodes(n, config.NodeURL), config.Timeout)
}

// assetController fetches symbols through r, behind the symbol cache unless
// --no-cache is set.
func assetController(r assets.SymbolReader, network string) assets.Controller {
	var c assets.Controller = assets.NewContractController(r, logger)
	if config.NoCache {
		return c
	}
	path := config.CachePath
	if path == "" {
		path = cache.DefaultPath
	}
	return assets.NewCachedController(c, cache.NewSimpleCache(path), network, logger)
}

func symbolResolver(r *reader.EthReader, n networks.Network) *symbol.Resolver {
	return symbol.NewResolver(db.Default(), assetController(r, n.GetName()), logger)
}

// knownToken returns the registry entry for address when it carries a
// symbol. Entries without one are left to the resolver.
func knownToken(registry symbol.Registry, address string) (db.TokenMetadata, bool) {
	token, found := registry.Lookup(address)
	if !found || strings.TrimSpace(token.Symbol) == "" {
		return db.TokenMetadata{}, false
	}
	return token, true
}
