package db

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxMatches = 10

func getTokenMatches(input string, source FuzzySource) ([]TokenMetadata, []int) {
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	result := []TokenMetadata{}
	scores := []int{}
	for i := 0; i < maxMatches && i < len(matches); i++ {
		result = append(result, source[matches[i].Index])
		scores = append(scores, matches[i].Score)
	}
	return result, scores
}

// SearchTokens fuzzy matches input against the symbol, name and address of
// every token in r, best matches first.
func (r *Registry) SearchTokens(input string) ([]TokenMetadata, []int) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []TokenMetadata{}, []int{}
	}
	return getTokenMatches(input, NewTokenFuzzySource(r))
}

// SearchTokens searches the default registry.
func SearchTokens(input string) ([]TokenMetadata, []int) {
	return Default().SearchTokens(input)
}
