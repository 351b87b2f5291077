// Package locale holds the language-specific tables the interpretation
// engine is driven by: stop words, measurement units, spoken number words,
// contradiction pairs and intent keyword sets. The built-in tables target
// Vietnamese retail speech; everything can be overridden from a YAML file
// so a deployment can retune without recompiling.
package locale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords groups the phrase sets the intent classifier dispatches on.
// Multi-word entries are matched as substrings of the normalized
// transcript, single words as whole tokens.
type Keywords struct {
	AddToCart      []string `yaml:"add_to_cart"`
	CreateOrder    []string `yaml:"create_order"`
	ViewDebt       []string `yaml:"view_debt"`
	ViewReport     []string `yaml:"view_report"`
	SearchProduct  []string `yaml:"search_product"`
	SearchCustomer []string `yaml:"search_customer"`
	// CustomerRef marks a customer reference ("cho <name>", "của <name>").
	CustomerRef []string `yaml:"customer_ref"`
	// Honorifics are stripped from the front of a captured customer span
	// before fuzzy matching ("tiệm Hồng" -> "Hồng" still matches either way,
	// but short names need the bare form).
	Honorifics []string `yaml:"honorifics"`
	// ReportWeek/ReportMonth upgrade the default "today" report period.
	ReportWeek  []string `yaml:"report_week"`
	ReportMonth []string `yaml:"report_month"`
}

// Pair is a pair of semantically opposite descriptive words. The members
// keep their tone marks: contradiction checks run on un-normalized text
// because stripping diacritics would collapse the very words that
// distinguish products.
type Pair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// NumberWord maps a spoken numeral (already diacritic-stripped) to its
// value. Kept as an ordered list so "mười" is tried before shorter words
// it could shadow.
type NumberWord struct {
	Word  string  `yaml:"word"`
	Value float64 `yaml:"value"`
}

// Locale is the full language configuration.
type Locale struct {
	StopWords      []string     `yaml:"stop_words"`
	Units          []string     `yaml:"units"`
	NumberWords    []NumberWord `yaml:"number_words"`
	Contradictions []Pair       `yaml:"contradictions"`
	Keywords       Keywords     `yaml:"keywords"`
}

// Default returns the built-in Vietnamese tables. The word lists were
// tuned against real shop transcripts; changing entries shifts matching
// behavior, so overrides should be deliberate.
func Default() *Locale {
	return &Locale{
		// Grammatical particles, politeness fillers and generic adjectives
		// that carry no product information. Stored in normalized
		// (diacritic-free) form because the tokenizer filters after
		// normalization.
		StopWords: []string{
			"cai", "chiec", "cua", "cho", "va", "voi", "la", "cac",
			"nhung", "oi", "nhe", "nha", "di", "thi",
			"them", "lay", "gium", "dum", "giup",
		},
		// Measurement/packaging units, in spoken (tone-bearing) spelling.
		// Filtered by the tokenizer and recognized by the quantity parser;
		// consumers derive the diacritic-free forms themselves, so both
		// "gói" and "goi" are covered by one entry.
		Units: []string{
			"kg", "ký", "kí", "kilo", "gam", "gram", "lít", "chai",
			"hộp", "gói", "thùng", "bao", "lon", "cây", "túi", "vỉ",
			"cân", "cuộn", "bịch",
		},
		NumberWords: []NumberWord{
			{Word: "muoi", Value: 10},
			{Word: "mot", Value: 1},
			{Word: "hai", Value: 2},
			{Word: "ba", Value: 3},
			{Word: "bon", Value: 4},
			{Word: "nam", Value: 5},
			{Word: "sau", Value: 6},
			{Word: "bay", Value: 7},
			{Word: "tam", Value: 8},
			{Word: "chin", Value: 9},
		},
		// Opposite descriptive words. A query naming one side must not
		// match a product naming the other, no matter how much of the
		// rest of the name they share.
		Contradictions: []Pair{
			{A: "đen", B: "trắng"},
			{A: "đỏ", B: "xanh"},
			{A: "nhỏ", B: "lớn"},
			{A: "ngọt", B: "đắng"},
			{A: "nóng", B: "lạnh"},
			{A: "tươi", B: "khô"},
			{A: "mặn", B: "nhạt"},
		},
		Keywords: Keywords{
			AddToCart:      []string{"thêm", "bỏ thêm", "cho thêm", "lấy thêm"},
			CreateOrder:    []string{"tạo đơn", "lên đơn", "đặt hàng", "mua", "bán"},
			ViewDebt:       []string{"công nợ", "nợ", "ghi nợ", "thiếu tiền"},
			ViewReport:     []string{"báo cáo", "doanh thu", "thống kê"},
			SearchProduct:  []string{"sản phẩm", "giá", "tìm hàng", "hàng"},
			SearchCustomer: []string{"khách hàng", "khách"},
			CustomerRef:    []string{"cho", "của"},
			Honorifics:     []string{"anh", "chị", "cô", "chú", "em", "tiệm", "shop", "quán", "khách"},
			ReportWeek:     []string{"tuần"},
			ReportMonth:    []string{"tháng"},
		},
	}
}

// Load reads a locale file, layering it over the defaults: lists present
// in the file replace the built-in ones, absent lists keep them.
func Load(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file: %w", err)
	}

	loc := Default()
	if err := yaml.Unmarshal(data, loc); err != nil {
		return nil, fmt.Errorf("failed to parse locale file: %w", err)
	}
	return loc, nil
}

// Save writes the locale to a YAML file, typically to give operators a
// starting point for edits.
func (l *Locale) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal locale: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write locale file: %w", err)
	}
	return nil
}
