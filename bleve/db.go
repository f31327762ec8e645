package bleve

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	"github.com/tranvictor/allowance/db"
)

const batchSize = 1000

var (
	defaultIndex *TokenIndex
	defaultErr   error
	once         sync.Once
)

// TokenIndex is an in-memory full-text index over the names and symbols of a
// token registry. Documents are keyed by checksummed address so hits map
// straight back to registry entries.
type TokenIndex struct {
	index    bleve.Index
	registry *db.Registry
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("name", textFieldMapping)
	defaultMapping.AddFieldMappingsAt("symbol", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)

	indexMapping.TypeField = "type"
	indexMapping.DefaultAnalyzer = "en"

	return indexMapping
}

// NewTokenIndex indexes every token of r in memory.
func NewTokenIndex(r *db.Registry) (*TokenIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating token index: %w", err)
	}
	if err := indexTokens(index, r.All()); err != nil {
		index.Close()
		return nil, err
	}
	return &TokenIndex{index: index, registry: r}, nil
}

// Default returns the index over the bundled registry, built on first use.
func Default() (*TokenIndex, error) {
	once.Do(func() {
		defaultIndex, defaultErr = NewTokenIndex(db.Default())
	})
	return defaultIndex, defaultErr
}

func (ti *TokenIndex) Close() error {
	return ti.index.Close()
}

// Search runs a phrase match and a fuzzy term match (edit distance 1) and
// returns the union ordered by bleve score. Scores are scaled to ints.
func (ti *TokenIndex) Search(input string) ([]db.TokenMetadata, []int) {
	input = strings.TrimSpace(input)
	results := []db.TokenMetadata{}
	resultScores := []int{}
	if input == "" {
		return results, resultScores
	}
	matchQuery := bleve.NewMatchPhraseQuery(input)
	fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(input))
	fuzzyQuery.Fuzziness = 1
	query := bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery)
	request := bleve.NewSearchRequest(query)
	searchResults, err := ti.index.Search(request)
	if err != nil {
		return results, resultScores
	}
	for _, hit := range searchResults.Hits {
		token, found := ti.registry.Lookup(hit.ID)
		if !found {
			continue
		}
		results = append(results, token)
		resultScores = append(resultScores, int(hit.Score*1000000))
	}
	return results, resultScores
}

func indexTokens(i bleve.Index, tokens []db.TokenMetadata) error {
	batch := i.NewBatch()
	batchCount := 0
	for _, token := range tokens {
		err := batch.Index(token.Address, map[string]interface{}{
			"symbol": token.Symbol,
			"name":   token.Name,
		})
		if err != nil {
			return fmt.Errorf("indexing %s: %w", token.Address, err)
		}
		batchCount++

		if batchCount >= batchSize {
			if err := i.Batch(batch); err != nil {
				return err
			}
			batch = i.NewBatch()
			batchCount = 0
		}
	}
	// flush the last batch
	if batchCount > 0 {
		return i.Batch(batch)
	}
	return nil
}
