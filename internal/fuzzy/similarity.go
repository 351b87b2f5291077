// Package fuzzy is the lexical similarity engine: edit-distance,
// containment, prefix and word-overlap scoring between two strings, plus
// a best-match search with contradiction suppression. It is the fallback
// matcher wherever no term-weighting index exists (customer names in
// particular are never indexed).
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/vietshop/voicepilot/internal/locale"
	"github.com/vietshop/voicepilot/internal/textnorm"
)

// Scoring constants, tuned on Vietnamese product names. Edit-distance alone
// confuses names that share a common head word ("bột khai" vs "bột cacao"),
// so containment and overlap push toward the distinguishing word and the
// contradiction penalty suppresses opposite-word false positives. Changing
// any of these silently regresses match quality; the unit tests pin the
// observable behavior.
const (
	// ContainsBonus applies when the candidate contains the whole query;
	// ContainedBonus when the query contains the candidate. Asymmetric:
	// a candidate that spells out everything the user said is a stronger
	// signal than a candidate the user over-specified.
	ContainsBonus  = 0.85
	ContainedBonus = 0.7

	// PrefixBonus applies when one normalized string starts with the other.
	PrefixBonus = 0.8

	// ContradictionPenalty is subtracted once when the query names one side
	// of an opposite pair and the candidate names the other. Only the first
	// matching pair counts; the thresholds were calibrated against that
	// early-exit, not against summed penalties.
	ContradictionPenalty = 0.8
)

// Distance is the Levenshtein edit distance over runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity maps edit distance onto [0,1] after normalization:
// 1 - dist/max(len). Two empty strings are identical.
func Similarity(a, b string) float64 {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)

	la := len([]rune(na))
	lb := len([]rune(nb))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(na, nb))/float64(maxLen)
}

// ContainScore scores substring containment between the normalized forms.
// Zero when neither contains the other.
func ContainScore(query, candidate string) float64 {
	q := textnorm.Normalize(query)
	c := textnorm.Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	if strings.Contains(c, q) {
		return ContainsBonus
	}
	if strings.Contains(q, c) {
		return ContainedBonus
	}
	return 0
}

// PrefixScore scores a shared prefix between the normalized forms.
func PrefixScore(query, candidate string) float64 {
	q := textnorm.Normalize(query)
	c := textnorm.Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	if strings.HasPrefix(c, q) || strings.HasPrefix(q, c) {
		return PrefixBonus
	}
	return 0
}

// WordOverlap is the fraction of query words found among the candidate's
// words, counting exact matches and substring hits.
func WordOverlap(query, candidate string) float64 {
	qWords := strings.Fields(textnorm.Normalize(query))
	cWords := strings.Fields(textnorm.Normalize(candidate))
	if len(qWords) == 0 || len(cWords) == 0 {
		return 0
	}

	hits := 0
	for _, qw := range qWords {
		for _, cw := range cWords {
			if qw == cw || strings.Contains(cw, qw) || strings.Contains(qw, cw) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(qWords))
}

// Matcher runs best-match searches with the locale's contradiction table.
type Matcher struct {
	pairs []locale.Pair
}

// NewMatcher builds a matcher from the locale.
func NewMatcher(loc *locale.Locale) *Matcher {
	return &Matcher{pairs: loc.Contradictions}
}

// Score computes the composite score of candidate against query: the best
// of the four lexical signals, minus the contradiction penalty, clamped
// at zero.
func (m *Matcher) Score(query, candidate string) float64 {
	score := Similarity(query, candidate)
	if s := ContainScore(query, candidate); s > score {
		score = s
	}
	if s := PrefixScore(query, candidate); s > score {
		score = s
	}
	if s := WordOverlap(query, candidate); s > score {
		score = s
	}

	if m.contradicts(query, candidate) {
		score -= ContradictionPenalty
		if score < 0 {
			score = 0
		}
	}
	return score
}

// BestMatch returns the index and score of the best-scoring name, or -1
// when nothing reaches minScore. Ties keep the earliest candidate.
func (m *Matcher) BestMatch(query string, names []string, minScore float64) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, name := range names {
		if score := m.Score(query, name); score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < minScore {
		return -1, 0
	}
	return best, bestScore
}

// contradicts reports whether query and candidate sit on opposite sides of
// a contradiction pair. It runs on un-normalized, tone-bearing words:
// diacritic stripping would merge exactly the words the table is built to
// tell apart. First matching pair wins.
func (m *Matcher) contradicts(query, candidate string) bool {
	qWords := toneWords(query)
	cWords := toneWords(candidate)
	for _, p := range m.pairs {
		if (qWords[p.A] && cWords[p.B]) || (qWords[p.B] && cWords[p.A]) {
			return true
		}
	}
	return false
}

func toneWords(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[strings.Trim(w, ",.;:!?")] = true
	}
	return words
}
