package textnorm

import (
	"strings"
	"testing"

	"github.com/vietshop/voicepilot/internal/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Đường Đen", "duong den"},
		{"đường đen", "duong den"},
		{"duong den", "duong den"},
		{"Sữa Trắng", "sua trang"},
		{"  Bột   mì  ", "bot mi"},
		{"", ""},
		{"   ", ""},
		{"TẠO ĐƠN", "tao don"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tạo đơn cho tiệm Hồng, 5kg bột mì",
		"đường đen",
		"Sữa TRẮNG ngọt",
		"",
		"abc 123",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeToneCollision(t *testing.T) {
	// Tone-distinguishing homographs collapse on purpose; loose matching
	// depends on it.
	if Normalize("đường đen") != Normalize("duong den") {
		t.Errorf("expected %q and %q to normalize identically", "đường đen", "duong den")
	}
	a, b, c := Normalize("ma"), Normalize("má"), Normalize("mà")
	if a != b || b != c {
		t.Errorf("expected tone variants to collapse, got %q %q %q", a, b, c)
	}
}

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(locale.Default())

	tests := []struct {
		input    string
		expected []string
	}{
		{"Bột mì", []string{"bot", "mi"}},
		{"5kg đường và bột", []string{"5kg", "duong", "bot"}}, // "và" is a stop word
		{"cái hộp kg", nil},                                   // stop words and units only
		{"a b c", nil},                                        // all under two runes
		{"", nil},
		{"Sữa đặc ngọt", []string{"sua", "dac", "ngot"}},
	}

	for _, tt := range tests {
		got := tok.Tokenize(tt.input)
		if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestTokenizePreservesOrder(t *testing.T) {
	tok := NewTokenizer(locale.Default())
	got := tok.Tokenize("bột khai bột cacao")
	want := []string{"bot", "khai", "bot", "cacao"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("expected order-preserving tokens %v, got %v", want, got)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	tok := NewTokenizer(locale.Default())
	first := tok.Tokenize("Tạo đơn 5kg bột mì cho tiệm Hồng")
	second := tok.Tokenize(strings.Join(first, " "))
	if strings.Join(first, " ") != strings.Join(second, " ") {
		t.Errorf("Tokenize not idempotent: %v then %v", first, second)
	}
}

func BenchmarkNormalize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Normalize("Tạo đơn cho tiệm Hồng, 5kg bột mì và 2 chai nước mắm")
	}
}
