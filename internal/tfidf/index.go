// Package tfidf builds a term-weighting index over product names and
// answers ranked similarity searches against it. Rare words dominate the
// score, so "bột khai" and "bột cacao" separate on their distinguishing
// term instead of colliding on the shared "bột".
package tfidf

import (
	"math"
	"sort"
	"strings"

	"github.com/vietshop/voicepilot/internal/textnorm"
	"github.com/vietshop/voicepilot/pkg/models"
)

// Scoring constants, applied on top of cosine similarity. Exact/prefix/
// containment are mutually exclusive (strongest wins); the token-coverage
// and word-order bonuses stack. Values were tuned against Vietnamese
// catalog names and are pinned by the package tests.
const (
	BonusExactName = 0.5
	BonusPrefix    = 0.3
	BonusContains  = 0.2

	// BonusAllTokens applies when every query token appears in the item's
	// term set; BonusWordOrder when the item's token sequence contains the
	// query's tokens contiguously and in order.
	BonusAllTokens = 0.3
	BonusWordOrder = 0.2

	// VerbosePenalty shrinks items whose names carry more than
	// MaxExtraTerms tokens beyond the query, so a short query does not
	// latch onto an overly long catalog name.
	VerbosePenalty = 0.85
	MaxExtraTerms  = 2

	// DefaultMinScore gates BestProduct.
	DefaultMinScore = 0.3
)

type itemVector struct {
	product        models.Product
	weights        map[string]float64
	norm           float64
	terms          []string
	termSet        map[string]bool
	normalizedName string
}

// Index is the per-snapshot term-weighting model. It is immutable after
// Build and safe to share across goroutines; a catalog change means a
// full rebuild, never an in-place update.
type Index struct {
	tokenizer *textnorm.Tokenizer
	idf       map[string]float64
	items     []itemVector
}

// Build constructs the index for a product snapshot. An empty snapshot
// yields a valid index whose searches return nothing.
func Build(products []models.Product, tokenizer *textnorm.Tokenizer) *Index {
	idx := &Index{
		tokenizer: tokenizer,
		idf:       make(map[string]float64),
		items:     make([]itemVector, 0, len(products)),
	}

	// Document frequency across the whole catalog.
	df := make(map[string]int)
	tokenized := make([][]string, len(products))
	for i, p := range products {
		terms := tokenizer.Tokenize(p.Name)
		tokenized[i] = terms
		seen := map[string]bool{}
		for _, t := range terms {
			if !seen[t] {
				df[t]++
				seen[t] = true
			}
		}
	}

	// idf = ln(N/df). Exactly 0 for a term present in every item: a word
	// the whole catalog shares carries no discriminating power.
	total := float64(len(products))
	for term, count := range df {
		idx.idf[term] = math.Log(total / float64(count))
	}

	for i, p := range products {
		terms := tokenized[i]
		tf := map[string]float64{}
		for _, t := range terms {
			tf[t]++
		}

		weights := make(map[string]float64, len(tf))
		var sumSq float64
		termSet := make(map[string]bool, len(tf))
		for term, freq := range tf {
			w := freq * idx.idf[term]
			weights[term] = w
			sumSq += w * w
			termSet[term] = true
		}

		idx.items = append(idx.items, itemVector{
			product:        p,
			weights:        weights,
			norm:           math.Sqrt(sumSq),
			terms:          terms,
			termSet:        termSet,
			normalizedName: textnorm.Normalize(p.Name),
		})
	}

	return idx
}

// Len reports how many products are indexed.
func (idx *Index) Len() int {
	return len(idx.items)
}

// Search ranks all indexed products against the query and returns the top
// K. Query terms unseen in the catalog weigh zero and contribute nothing.
func (idx *Index) Search(query string, topK int) []models.ProductMatch {
	if len(idx.items) == 0 {
		return nil
	}

	queryTerms := idx.tokenizer.Tokenize(query)
	queryVec := make(map[string]float64, len(queryTerms))
	tf := map[string]float64{}
	for _, t := range queryTerms {
		tf[t]++
	}
	var querySumSq float64
	for term, freq := range tf {
		w := freq * idx.idf[term]
		queryVec[term] = w
		querySumSq += w * w
	}
	queryNorm := math.Sqrt(querySumSq)
	normalizedQuery := textnorm.Normalize(query)

	matches := make([]models.ProductMatch, 0, len(idx.items))
	for _, item := range idx.items {
		score := cosine(queryVec, queryNorm, item)
		score += nameBonus(normalizedQuery, item.normalizedName)

		if len(queryTerms) > 0 && coversAll(queryTerms, item.termSet) {
			score += BonusAllTokens
		}
		if containsSequence(item.terms, queryTerms) {
			score += BonusWordOrder
		}
		if len(item.terms) > len(queryTerms)+MaxExtraTerms {
			score *= VerbosePenalty
		}

		matches = append(matches, models.ProductMatch{Product: item.product, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// BestProduct returns the top search hit when it reaches minScore, else
// nil. minScore <= 0 falls back to DefaultMinScore.
func (idx *Index) BestProduct(query string, minScore float64) (*models.Product, float64) {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	top := idx.Search(query, 1)
	if len(top) == 0 || top[0].Score < minScore {
		return nil, 0
	}
	p := top[0].Product
	return &p, top[0].Score
}

func cosine(queryVec map[string]float64, queryNorm float64, item itemVector) float64 {
	if queryNorm == 0 || item.norm == 0 {
		return 0
	}
	var dot float64
	for term, qw := range queryVec {
		dot += qw * item.weights[term]
	}
	return dot / (queryNorm * item.norm)
}

// nameBonus rewards name-level matches, strongest signal first.
func nameBonus(query, name string) float64 {
	if query == "" || name == "" {
		return 0
	}
	switch {
	case query == name:
		return BonusExactName
	case strings.HasPrefix(name, query):
		return BonusPrefix
	case strings.Contains(name, query):
		return BonusContains
	}
	return 0
}

func coversAll(queryTerms []string, termSet map[string]bool) bool {
	for _, t := range queryTerms {
		if !termSet[t] {
			return false
		}
	}
	return true
}

// containsSequence reports whether terms contains query as a contiguous
// subsequence.
func containsSequence(terms, query []string) bool {
	if len(query) == 0 || len(query) > len(terms) {
		return false
	}
	for i := 0; i+len(query) <= len(terms); i++ {
		match := true
		for j, q := range query {
			if terms[i+j] != q {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
