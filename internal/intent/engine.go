// Package intent classifies a finalized transcript into one retail command
// and assembles the structured result from resolved entities and
// quantities. Classification is a single dispatch step over an ordered
// rule table; there is no cross-utterance state beyond the immutable
// product index.
package intent

import (
	"regexp"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vietshop/voicepilot/internal/fuzzy"
	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/resolver"
	"github.com/vietshop/voicepilot/internal/segment"
	"github.com/vietshop/voicepilot/internal/textnorm"
	"github.com/vietshop/voicepilot/internal/tfidf"
	"github.com/vietshop/voicepilot/internal/trace"
	"github.com/vietshop/voicepilot/pkg/models"
)

const (
	// DefaultMinConfidence gates interpretation: hypotheses below it are
	// never classified.
	DefaultMinConfidence = 0.7

	// SuggestionThreshold filters "did you mean" entries.
	SuggestionThreshold = 0.6
)

// Engine wires the matching stack behind a confidence gate. The catalog
// snapshot and its index are replaced wholesale by Reload; between
// reloads the engine is read-only and safe for concurrent dispatch.
type Engine struct {
	mu sync.RWMutex

	loc       *locale.Locale
	tokenizer *textnorm.Tokenizer
	matcher   *fuzzy.Matcher
	segmenter *segment.Segmenter

	index     *tfidf.Index
	resolver  *resolver.Resolver
	products  []models.Product
	customers []models.Customer

	rules         []rule
	minConfidence float64
	minProduct    float64
	minCustomer   float64
	suggestGate   float64
	log           *zap.Logger

	custRefRe             *regexp.Regexp
	searchProductStripRe  *regexp.Regexp
	searchCustomerStripRe *regexp.Regexp
}

// NewEngine creates an engine for the given locale. logger may be nil to
// disable interpretation tracing. The engine starts with an empty catalog;
// call Reload before dispatching for real matches.
func NewEngine(loc *locale.Locale, logger *zap.Logger) *Engine {
	e := &Engine{
		loc:           loc,
		tokenizer:     textnorm.NewTokenizer(loc),
		matcher:       fuzzy.NewMatcher(loc),
		segmenter:     segment.NewSegmenter(loc),
		minConfidence: DefaultMinConfidence,
		suggestGate:   SuggestionThreshold,
		log:           logger,
	}
	e.rules = e.buildRules()
	e.compilePatterns()
	e.Reload(nil, nil)
	return e
}

// SetMinConfidence overrides the dispatch gate.
func (e *Engine) SetMinConfidence(min float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.minConfidence = min
}

// SetThresholds overrides the match-score gates; non-positive values keep
// the current ones. Takes effect immediately.
func (e *Engine) SetThresholds(product, customer, suggestion float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if product > 0 {
		e.minProduct = product
	}
	if customer > 0 {
		e.minCustomer = customer
	}
	if suggestion > 0 {
		e.suggestGate = suggestion
	}
	if e.resolver != nil {
		e.resolver.SetMinScores(e.minProduct, e.minCustomer)
	}
}

// Reload swaps in a fresh catalog snapshot: the term-weighting index is
// rebuilt from scratch (never patched) and the resolver re-bound. Callers
// never observe a half-built index.
func (e *Engine) Reload(products []models.Product, customers []models.Customer) {
	idx := tfidf.Build(products, e.tokenizer)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.products = products
	e.customers = customers
	e.index = idx
	e.resolver = resolver.New(idx, e.matcher, e.segmenter, products, customers)
	e.resolver.SetMinScores(e.minProduct, e.minCustomer)
}

// Dispatch interprets one finalized transcript. A hypothesis below the
// confidence gate short-circuits to LowConfidence without touching the
// classifier: uncertain speech is never acted on.
func (e *Engine) Dispatch(transcript string, confidence float64) models.Command {
	e.mu.RLock()
	gate := e.minConfidence
	e.mu.RUnlock()

	rec := trace.New(e.log, transcript)

	if confidence < gate {
		cmd := models.Command{
			Kind:       models.KindLowConfidence,
			Transcript: transcript,
			Confidence: confidence,
		}
		rec.Finish(cmd.Kind.String(), confidence)
		return cmd
	}

	start := time.Now()
	cmd := e.Classify(transcript)
	rec.Add("classify", len(cmd.Items), time.Since(start))
	rec.Finish(cmd.Kind.String(), confidence)
	return cmd
}

// Suggest ranks every catalog name by similarity to the whole transcript
// and keeps those above the threshold, best first. Callers truncate for
// display. Independent of Dispatch: even a confidently classified command
// can carry suggestions when its entity match was a narrow pick.
func (e *Engine) Suggest(transcript string) []models.Suggestion {
	e.mu.RLock()
	products := e.products
	customers := e.customers
	gate := e.suggestGate
	e.mu.RUnlock()

	var out []models.Suggestion
	for _, p := range products {
		if score := fuzzy.Similarity(transcript, p.Name); score > gate {
			out = append(out, models.Suggestion{Name: p.Name, Kind: models.SuggestProduct, Score: score})
		}
	}
	for _, c := range customers {
		if score := fuzzy.Similarity(transcript, c.Name); score > gate {
			out = append(out, models.Suggestion{Name: c.Name, Kind: models.SuggestCustomer, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
