// Package resolver turns a cleaned utterance span into a catalog entity.
// Products go through the term-weighting index when one is available and
// fall back to plain lexical matching otherwise; customers are never
// indexed and always resolve lexically.
package resolver

import (
	"github.com/vietshop/voicepilot/internal/fuzzy"
	"github.com/vietshop/voicepilot/internal/segment"
	"github.com/vietshop/voicepilot/internal/tfidf"
	"github.com/vietshop/voicepilot/pkg/models"
)

// Match thresholds per call site. Customers tolerate looser input (spoken
// names come with honorifics and nicknames) than raw product fallback.
const (
	MinCustomerScore = 0.5
	MinProductScore  = 0.6
)

// Resolver is a pure view over one catalog snapshot. It holds no mutable
// state and is safe to share.
type Resolver struct {
	index     *tfidf.Index
	matcher   *fuzzy.Matcher
	segmenter *segment.Segmenter
	products  []models.Product
	customers []models.Customer

	minProduct  float64
	minCustomer float64
}

// New builds a resolver. index may be nil when no product index was built
// (empty catalog); resolution then degrades to direct similarity.
func New(index *tfidf.Index, matcher *fuzzy.Matcher, segmenter *segment.Segmenter,
	products []models.Product, customers []models.Customer) *Resolver {
	return &Resolver{
		index:       index,
		matcher:     matcher,
		segmenter:   segmenter,
		products:    products,
		customers:   customers,
		minProduct:  tfidf.DefaultMinScore,
		minCustomer: MinCustomerScore,
	}
}

// SetMinScores overrides the match gates; non-positive values keep the
// current ones.
func (r *Resolver) SetMinScores(product, customer float64) {
	if product > 0 {
		r.minProduct = product
	}
	if customer > 0 {
		r.minCustomer = customer
	}
}

// ResolveProduct resolves one raw item span into a parsed line item:
// quantity from the segmenter, product from the index (or lexical
// fallback), subtotal derived. Nil means no confident match, never an
// error.
func (r *Resolver) ResolveProduct(span string) *models.ParsedItem {
	query := r.segmenter.CleanSpan(span)
	if query == "" {
		return nil
	}

	product := r.lookupProduct(query)
	if product == nil {
		return nil
	}

	qty := r.segmenter.ParseQuantity(span)
	return &models.ParsedItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
		UnitPrice:   product.Price,
		Subtotal:    qty * product.Price,
	}
}

// FindProduct resolves free text directly to a product, used by the
// search intent where no quantity is involved.
func (r *Resolver) FindProduct(query string) *models.Product {
	return r.lookupProduct(query)
}

// ResolveCustomer resolves free text to a customer via lexical matching.
func (r *Resolver) ResolveCustomer(text string) *models.Customer {
	if len(r.customers) == 0 {
		return nil
	}
	names := make([]string, len(r.customers))
	for i, c := range r.customers {
		names[i] = c.Name
	}
	i, _ := r.matcher.BestMatch(text, names, r.minCustomer)
	if i < 0 {
		return nil
	}
	c := r.customers[i]
	return &c
}

func (r *Resolver) lookupProduct(query string) *models.Product {
	if r.index != nil && r.index.Len() > 0 {
		p, _ := r.index.BestProduct(query, r.minProduct)
		return p
	}
	if len(r.products) == 0 {
		return nil
	}
	names := make([]string, len(r.products))
	for i, p := range r.products {
		names[i] = p.Name
	}
	i, _ := r.matcher.BestMatch(query, names, MinProductScore)
	if i < 0 {
		return nil
	}
	p := r.products[i]
	return &p
}
