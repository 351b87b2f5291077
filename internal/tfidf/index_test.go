package tfidf

import (
	"testing"

	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/textnorm"
	"github.com/vietshop/voicepilot/pkg/models"
)

func testTokenizer() *textnorm.Tokenizer {
	return textnorm.NewTokenizer(locale.Default())
}

func TestBuildEmptyCatalog(t *testing.T) {
	idx := Build(nil, testTokenizer())
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d items", idx.Len())
	}
	if got := idx.Search("bột mì", 5); len(got) != 0 {
		t.Errorf("expected no results from empty index, got %d", len(got))
	}
	if p, _ := idx.BestProduct("bột mì", 0.3); p != nil {
		t.Errorf("expected nil best product from empty index, got %v", p)
	}
}

func TestDiscriminativeMatch(t *testing.T) {
	// Both names share the common head word "bột"; the rare tail word has
	// to decide the winner.
	products := []models.Product{
		{ID: 1, Name: "Bột khai"},
		{ID: 2, Name: "Bột cacao"},
	}
	idx := Build(products, testTokenizer())

	p, score := idx.BestProduct("bột khai", 0.3)
	if p == nil || p.Name != "Bột khai" {
		t.Fatalf("expected Bột khai, got %v", p)
	}
	if score < 0.3 {
		t.Errorf("expected score >= 0.3, got %f", score)
	}

	p, _ = idx.BestProduct("bột cacao", 0.3)
	if p == nil || p.Name != "Bột cacao" {
		t.Fatalf("expected Bột cacao, got %v", p)
	}
}

func TestSearchRankingOrder(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Đường đen"},
		{ID: 2, Name: "Đường trắng"},
		{ID: 3, Name: "Nước mắm"},
	}
	idx := Build(products, testTokenizer())

	got := idx.Search("đường trắng", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].Product.ID != 2 {
		t.Errorf("expected Đường trắng first, got %q", got[0].Product.Name)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted descending at %d: %f > %f", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestSearchTopK(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Bột mì"},
		{ID: 2, Name: "Bột khai"},
		{ID: 3, Name: "Bột cacao"},
	}
	idx := Build(products, testTokenizer())
	if got := idx.Search("bột", 2); len(got) != 2 {
		t.Errorf("expected topK to truncate to 2, got %d", len(got))
	}
}

func TestExactNameBonusOnSingleItemCatalog(t *testing.T) {
	// With one product every term appears in every document, so all IDF
	// weights are zero and cosine contributes nothing. The name-level
	// bonuses have to carry the match.
	products := []models.Product{{ID: 1, Name: "Bột mì", Price: 25000}}
	idx := Build(products, testTokenizer())

	p, score := idx.BestProduct("bột mì", 0.3)
	if p == nil || p.ID != 1 {
		t.Fatalf("expected the only product to match, got %v", p)
	}
	wantMin := BonusExactName + BonusAllTokens + BonusWordOrder
	if score < wantMin {
		t.Errorf("expected score >= %f from stacked bonuses, got %f", wantMin, score)
	}
}

func TestVerbosePenalty(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Đường"},
		{ID: 2, Name: "Đường cát vàng loại một thượng hạng"},
	}
	idx := Build(products, testTokenizer())

	got := idx.Search("đường", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Product.ID != 1 {
		t.Errorf("expected the terse name to outrank the verbose one, got %q first", got[0].Product.Name)
	}
}

func TestUnknownQueryTermsContributeNothing(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Bột mì"},
		{ID: 2, Name: "Sữa đặc"},
	}
	idx := Build(products, testTokenizer())

	// A query entirely outside the catalog vocabulary scores zero.
	if p, _ := idx.BestProduct("xyzabc", 0.3); p != nil {
		t.Errorf("expected no match for out-of-vocabulary query, got %v", p)
	}
}

func BenchmarkSearch(b *testing.B) {
	products := []models.Product{
		{ID: 1, Name: "Bột mì"},
		{ID: 2, Name: "Bột khai"},
		{ID: 3, Name: "Bột cacao"},
		{ID: 4, Name: "Đường đen"},
		{ID: 5, Name: "Đường trắng"},
		{ID: 6, Name: "Sữa đặc"},
		{ID: 7, Name: "Nước mắm"},
		{ID: 8, Name: "Dầu ăn"},
	}
	idx := Build(products, testTokenizer())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Search("bột khai", 5)
	}
}
