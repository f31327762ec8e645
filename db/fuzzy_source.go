package db

import (
	"fmt"
	"strings"
)

// FuzzySource adapts a token list to sahilm/fuzzy. Each token is matched on
// "symbol_name_address" with spaces folded to underscores.
type FuzzySource []TokenMetadata

func (self FuzzySource) Len() int {
	return len(self)
}

func (self FuzzySource) String(i int) string {
	return fmt.Sprintf(
		"%s_%s_%s",
		self[i].Symbol,
		strings.Replace(self[i].Name, " ", "_", -1),
		self[i].Address,
	)
}

func NewTokenFuzzySource(r *Registry) FuzzySource {
	return FuzzySource(r.All())
}
