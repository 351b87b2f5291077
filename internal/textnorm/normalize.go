// Package textnorm turns raw Vietnamese transcripts into the loose form
// every matcher downstream works on: lowercase, diacritics stripped,
// stop words and unit tokens removed.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vietshop/voicepilot/internal/locale"
)

// stripMarks decomposes to NFD and drops combining marks, which removes
// Vietnamese tone and vowel diacritics.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritical marks and collapses whitespace.
// NFD decomposition does not touch đ/Đ (it is a base letter, not a mark),
// so that one is mapped by hand. Total function: any input, including the
// empty string, yields a valid result. Idempotent.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	stripped, _, err := transform.String(stripMarks, text)
	if err == nil {
		text = stripped
	}
	text = strings.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		case 'Đ':
			return 'D'
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

// Tokenizer splits normalized text into matchable terms, dropping stop
// words and measurement units.
type Tokenizer struct {
	stop map[string]bool
}

// NewTokenizer builds a tokenizer from the locale's stop-word and unit
// tables.
func NewTokenizer(loc *locale.Locale) *Tokenizer {
	stop := make(map[string]bool, len(loc.StopWords)+len(loc.Units))
	for _, w := range loc.StopWords {
		stop[Normalize(w)] = true
	}
	for _, u := range loc.Units {
		stop[Normalize(u)] = true
	}
	return &Tokenizer{stop: stop}
}

// Tokenize normalizes the text, splits on whitespace and discards tokens
// shorter than two runes or present in the stop set. Word order is
// preserved; phrase-level bonuses downstream depend on it. Idempotent.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 || t.stop[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
