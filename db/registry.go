package db

import (
	"sort"
	"strings"

	"github.com/tranvictor/allowance/util"
)

// TokenMetadata is the static description of a well known token.
type TokenMetadata struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Name     string `json:"name"`
}

// Registry maps checksummed contract addresses to token metadata. It is
// read only once built so it is safe to share between goroutines.
type Registry struct {
	tokens map[string]TokenMetadata
	sorted []TokenMetadata
}

// NewRegistry indexes tokens by their checksummed address. Entries with a
// malformed address are dropped, later duplicates win.
func NewRegistry(tokens []TokenMetadata) *Registry {
	r := &Registry{
		tokens: map[string]TokenMetadata{},
	}
	for _, t := range tokens {
		addr, err := util.ToChecksumAddress(t.Address)
		if err != nil {
			continue
		}
		t.Address = addr
		r.tokens[addr] = t
	}
	r.sorted = make([]TokenMetadata, 0, len(r.tokens))
	for _, t := range r.tokens {
		r.sorted = append(r.sorted, t)
	}
	sort.Slice(r.sorted, func(i, j int) bool {
		si, sj := strings.ToLower(r.sorted[i].Symbol), strings.ToLower(r.sorted[j].Symbol)
		if si != sj {
			return si < sj
		}
		return r.sorted[i].Address < r.sorted[j].Address
	})
	return r
}

// Lookup normalizes address to its checksummed form and returns the matching
// entry. A malformed address is reported as not found.
func (r *Registry) Lookup(address string) (TokenMetadata, bool) {
	addr, err := util.ToChecksumAddress(address)
	if err != nil {
		return TokenMetadata{}, false
	}
	t, found := r.tokens[addr]
	return t, found
}

// All returns every entry ordered by symbol. The slice is a copy.
func (r *Registry) All() []TokenMetadata {
	result := make([]TokenMetadata, len(r.sorted))
	copy(result, r.sorted)
	return result
}

func (r *Registry) Len() int {
	return len(r.tokens)
}
