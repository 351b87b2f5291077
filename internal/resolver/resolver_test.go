package resolver

import (
	"testing"

	"github.com/vietshop/voicepilot/internal/fuzzy"
	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/segment"
	"github.com/vietshop/voicepilot/internal/textnorm"
	"github.com/vietshop/voicepilot/internal/tfidf"
	"github.com/vietshop/voicepilot/pkg/models"
)

func newResolver(products []models.Product, customers []models.Customer, withIndex bool) *Resolver {
	loc := locale.Default()
	var idx *tfidf.Index
	if withIndex {
		idx = tfidf.Build(products, textnorm.NewTokenizer(loc))
	}
	return New(idx, fuzzy.NewMatcher(loc), segment.NewSegmenter(loc), products, customers)
}

func TestResolveProductWithIndex(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Bột mì", Price: 25000, Unit: "kg"},
		{ID: 2, Name: "Bột khai", Price: 40000, Unit: "kg"},
	}
	r := newResolver(products, nil, true)

	item := r.ResolveProduct("5kg bột mì")
	if item == nil {
		t.Fatal("expected a resolved item")
	}
	if item.ProductID != 1 {
		t.Errorf("expected product 1, got %d", item.ProductID)
	}
	if item.Quantity != 5 {
		t.Errorf("expected quantity 5, got %v", item.Quantity)
	}
	if item.Subtotal != 125000 {
		t.Errorf("expected subtotal 125000, got %v", item.Subtotal)
	}
}

func TestResolveProductFallbackWithoutIndex(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Nước mắm", Price: 38000},
	}
	r := newResolver(products, nil, false)

	item := r.ResolveProduct("2 chai nước mắm")
	if item == nil {
		t.Fatal("expected a resolved item via direct similarity")
	}
	if item.ProductID != 1 || item.Quantity != 2 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestResolveProductNoMatch(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Bột mì", Price: 25000}}
	r := newResolver(products, nil, true)

	if item := r.ResolveProduct("5kg xi măng trộn sẵn"); item != nil {
		t.Errorf("expected nil for unknown product, got %+v", item)
	}
}

func TestResolveProductEmptyCatalog(t *testing.T) {
	r := newResolver(nil, nil, true)
	if item := r.ResolveProduct("5kg bột mì"); item != nil {
		t.Errorf("expected nil on empty catalog, got %+v", item)
	}
	if p := r.FindProduct("bột mì"); p != nil {
		t.Errorf("expected nil on empty catalog, got %+v", p)
	}
}

func TestResolveProductEmptySpan(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Bột mì", Price: 25000}}
	r := newResolver(products, nil, true)
	if item := r.ResolveProduct("5kg"); item != nil {
		t.Errorf("expected nil for a span that cleans to nothing, got %+v", item)
	}
}

func TestResolveCustomer(t *testing.T) {
	customers := []models.Customer{
		{ID: 10, Name: "Tiệm Hồng"},
		{ID: 11, Name: "Anh Tuấn"},
	}
	r := newResolver(nil, customers, false)

	c := r.ResolveCustomer("tiệm Hồng")
	if c == nil || c.ID != 10 {
		t.Fatalf("expected customer 10, got %+v", c)
	}

	// A bare name still matches its full catalog entry.
	c = r.ResolveCustomer("Hồng")
	if c == nil || c.ID != 10 {
		t.Fatalf("expected customer 10 for bare name, got %+v", c)
	}

	if c := r.ResolveCustomer("zzz"); c != nil {
		t.Errorf("expected nil for unknown customer, got %+v", c)
	}
}

func TestResolveCustomerEmpty(t *testing.T) {
	r := newResolver(nil, nil, false)
	if c := r.ResolveCustomer("Hồng"); c != nil {
		t.Errorf("expected nil with no customers, got %+v", c)
	}
}
