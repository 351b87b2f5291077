package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	loc := Default()

	if len(loc.StopWords) == 0 || len(loc.Units) == 0 {
		t.Fatal("expected built-in stop words and units")
	}
	if loc.NumberWords[0].Word != "muoi" {
		t.Errorf("number words must try muoi first, got %q", loc.NumberWords[0].Word)
	}
	if len(loc.Contradictions) == 0 {
		t.Fatal("expected built-in contradiction pairs")
	}
	for _, p := range loc.Contradictions {
		if p.A == "" || p.B == "" {
			t.Errorf("incomplete contradiction pair: %+v", p)
		}
	}
	if len(loc.Keywords.CreateOrder) == 0 || len(loc.Keywords.AddToCart) == 0 {
		t.Error("expected built-in intent keywords")
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locale.yaml")
	data := `
units:
  - thung
  - pallet
keywords:
  create_order:
    - "chốt đơn"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write locale file: %v", err)
	}

	loc, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load locale: %v", err)
	}

	// Lists present in the file replace the built-in ones.
	if len(loc.Units) != 2 || loc.Units[1] != "pallet" {
		t.Errorf("expected replaced units, got %v", loc.Units)
	}
	if len(loc.Keywords.CreateOrder) != 1 || loc.Keywords.CreateOrder[0] != "chốt đơn" {
		t.Errorf("expected replaced order keywords, got %v", loc.Keywords.CreateOrder)
	}

	// Absent lists keep the defaults.
	def := Default()
	if len(loc.StopWords) != len(def.StopWords) {
		t.Errorf("stop words should keep defaults, got %v", loc.StopWords)
	}
	if len(loc.Keywords.AddToCart) != len(def.Keywords.AddToCart) {
		t.Errorf("add-to-cart keywords should keep defaults, got %v", loc.Keywords.AddToCart)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing locale file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locale.yaml")

	loc := Default()
	loc.Units = []string{"kg", "bao"}
	if err := loc.Save(path); err != nil {
		t.Fatalf("failed to save locale: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load locale: %v", err)
	}
	if len(loaded.Units) != 2 || loaded.Units[0] != "kg" || loaded.Units[1] != "bao" {
		t.Errorf("unexpected units after round trip: %v", loaded.Units)
	}
	if len(loaded.Contradictions) != len(loc.Contradictions) {
		t.Errorf("contradiction pairs lost in round trip: %v", loaded.Contradictions)
	}
}
