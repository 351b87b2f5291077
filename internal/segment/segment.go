// Package segment extracts quantities from spoken spans and splits a
// multi-item utterance ("3kg đường, 2kg bột mì") into per-item spans the
// entity resolver can handle one at a time.
package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/textnorm"
)

// DefaultQuantity is assumed when an item span carries no spoken amount.
const DefaultQuantity = 1

// Segmenter holds the compiled patterns for one locale.
type Segmenter struct {
	loc *locale.Locale

	qtyUnit    *regexp.Regexp // number immediately followed by a unit
	number     *regexp.Regexp // bare numeric literal, "." or "," decimals
	cmdPrefix  *regexp.Regexp // leading command phrase ("tạo đơn ...")
	custRef    *regexp.Regexp // customer reference ("cho tiệm Hồng")
	separators *regexp.Regexp // explicit item separators
	unitWords  map[string]bool
}

// NewSegmenter compiles the locale's tables into a segmenter. Every
// phrase table is expanded to its raw and diacritic-free forms because
// the split/clean patterns run over raw transcripts. The unit pattern
// ends on an explicit non-letter class rather than \b, which in Go only
// understands ASCII word boundaries ("vỉ\b" never matches).
func NewSegmenter(loc *locale.Locale) *Segmenter {
	var unitForms []string
	unitWords := make(map[string]bool, len(loc.Units))
	for _, u := range loc.Units {
		unitForms = append(unitForms, regexp.QuoteMeta(u), regexp.QuoteMeta(textnorm.Normalize(u)))
		unitWords[textnorm.Normalize(u)] = true
	}

	var cmdPhrases []string
	for _, kw := range append(append([]string{}, loc.Keywords.CreateOrder...), loc.Keywords.AddToCart...) {
		cmdPhrases = append(cmdPhrases, regexp.QuoteMeta(kw), regexp.QuoteMeta(textnorm.Normalize(kw)))
	}

	var refWords []string
	for _, kw := range loc.Keywords.CustomerRef {
		refWords = append(refWords, regexp.QuoteMeta(kw), regexp.QuoteMeta(textnorm.Normalize(kw)))
	}

	return &Segmenter{
		loc:       loc,
		qtyUnit:   regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:` + strings.Join(unitForms, "|") + `)(?:$|[^\p{L}\p{N}])`),
		number:    regexp.MustCompile(`\d+(?:[.,]\d+)?`),
		cmdPrefix: regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(cmdPhrases, "|") + `)[\s,]+`),
		// The reference span is capped at two words; a longer customer name
		// is still found by the classifier's whole-name substring fallback,
		// while an unbounded span would swallow the product names that
		// follow it.
		custRef:   regexp.MustCompile(`(?i)(?:^|\s)(?:` + strings.Join(refWords, "|") + `)\s+[^\s,\d]+(?:\s+[^\s,\d]+)?`),
		separators: regexp.MustCompile(`(?i),|;|\s+và\s+|\s+va\s+|\s+với\s+|\s+voi\s+`),
		unitWords: unitWords,
	}
}

// ParseQuantity pulls the spoken amount out of an item span. Priority:
// a number glued to a recognized unit, then any bare number, then a
// Vietnamese number word matched by containment on the normalized text.
// Anything else defaults to one; absence of a quantity is not an error.
func (s *Segmenter) ParseQuantity(text string) float64 {
	norm := textnorm.Normalize(text)

	if m := s.qtyUnit.FindStringSubmatch(norm); m != nil {
		if v, ok := parseNumber(m[1]); ok {
			return v
		}
	}
	if m := s.number.FindString(norm); m != "" {
		if v, ok := parseNumber(m); ok {
			return v
		}
	}
	for _, nw := range s.loc.NumberWords {
		if strings.Contains(norm, nw.Word) {
			return nw.Value
		}
	}
	return DefaultQuantity
}

// SplitItems cuts a transcript into per-item spans. Leading command
// phrases and customer references are removed first, then the text is
// split on explicit separators. A single remaining span holding several
// quantity+unit occurrences is re-split by lookahead on those, which
// handles "3 kg đường 2 kg bột mì" spoken without pauses. Spans whose
// cleaned form is under two characters are dropped silently.
func (s *Segmenter) SplitItems(text string) []string {
	t := strings.TrimSpace(text)
	for {
		stripped := s.cmdPrefix.ReplaceAllString(t, "")
		if stripped == t {
			break
		}
		t = stripped
	}
	t = s.custRef.ReplaceAllString(t, " ")

	spans := s.separators.Split(t, -1)
	spans = compact(spans)

	if len(spans) == 1 {
		if locs := s.qtyUnit.FindAllStringIndex(spans[0], -1); len(locs) > 1 {
			spans = splitAt(spans[0], locs)
		}
	}

	items := make([]string, 0, len(spans))
	for _, span := range spans {
		if len([]rune(s.CleanSpan(span))) < 2 {
			continue
		}
		items = append(items, strings.TrimSpace(span))
	}
	return items
}

// CleanSpan strips quantity, unit and number-word tokens from a span,
// leaving the product-name query. Diacritics are kept: the contradiction
// check downstream needs the tone-bearing words.
func (s *Segmenter) CleanSpan(span string) string {
	span = s.qtyUnit.ReplaceAllString(span, " ")

	fields := strings.Fields(span)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		nf := textnorm.Normalize(f)
		if s.number.MatchString(nf) || s.unitWords[nf] || s.isNumberWord(nf) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Trim(strings.Join(kept, " "), " ,.;")
}

func (s *Segmenter) isNumberWord(token string) bool {
	for _, nw := range s.loc.NumberWords {
		if token == nw.Word {
			return true
		}
	}
	return false
}

func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func compact(spans []string) []string {
	out := spans[:0]
	for _, s := range spans {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitAt cuts text before each quantity occurrence past the first, so
// every segment starts with its own quantity.
func splitAt(text string, locs [][]int) []string {
	var spans []string
	prev := 0
	for i, loc := range locs {
		if i == 0 {
			continue
		}
		spans = append(spans, text[prev:loc[0]])
		prev = loc[0]
	}
	spans = append(spans, text[prev:])
	return spans
}
