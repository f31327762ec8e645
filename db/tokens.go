package db

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed contract_map.json
var contractMapJSON []byte

// contractEntry mirrors one value of contract_map.json. Entries without the
// erc20 flag (NFTs, plain contracts) are not tokens and are skipped.
type contractEntry struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	ERC20    bool   `json:"erc20"`
	Logo     string `json:"logo"`
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

func parseContractMap(content []byte) ([]TokenMetadata, error) {
	raw := map[string]contractEntry{}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("decoding contract map: %w", err)
	}
	result := make([]TokenMetadata, 0, len(raw))
	for addr, entry := range raw {
		if !entry.ERC20 {
			continue
		}
		result = append(result, TokenMetadata{
			Address:  addr,
			Symbol:   entry.Symbol,
			Decimals: entry.Decimals,
			Name:     entry.Name,
		})
	}
	return result, nil
}

// Default returns the process wide registry built from the bundled contract
// map. It is initialized on first use and never mutated afterwards.
func Default() *Registry {
	once.Do(func() {
		tokens, err := parseContractMap(contractMapJSON)
		if err != nil {
			// the map is embedded at build time, a decode failure is a
			// packaging bug
			panic(err)
		}
		defaultRegistry = NewRegistry(tokens)
	})
	return defaultRegistry
}

// Lookup consults the default registry.
func Lookup(address string) (TokenMetadata, bool) {
	return Default().Lookup(address)
}
