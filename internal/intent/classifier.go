package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vietshop/voicepilot/internal/resolver"
	"github.com/vietshop/voicepilot/internal/textnorm"
	"github.com/vietshop/voicepilot/pkg/models"
)

// UnknownHelp is returned verbatim for utterances no rule claims.
const UnknownHelp = "Không hiểu yêu cầu. Thử: \"tạo đơn cho <khách> <số lượng> <sản phẩm>\", \"thêm <số lượng> <sản phẩm>\", \"xem công nợ\", \"báo cáo doanh thu\"."

// rule is one row of the dispatch table. Rows are tried in order and the
// first match wins, which makes precedence a property of the table rather
// than of nested conditionals.
type rule struct {
	kind  models.CommandKind
	match func(norm string) bool
	build func(raw, norm string, r *resolver.Resolver) models.Command
}

var (
	debtMonthRe = regexp.MustCompile(`thang\s*(\d{1,2})`)
	debtYearRe  = regexp.MustCompile(`nam\s*(\d{4})`)
)

// buildRules assembles the precedence table:
//  1. add-to-cart claims the "thêm ..." shortcut before create-order can,
//  2. create-order on order/buy/sell keywords,
//  3. debt, 4. report, 5. product search, 6. customer search,
//  7. unknown fallback.
func (e *Engine) buildRules() []rule {
	kw := e.loc.Keywords
	return []rule{
		{
			kind: models.KindAddToCart,
			match: func(norm string) bool {
				return hasKeywordPrefix(norm, kw.AddToCart) && !containsKeyword(norm, kw.CreateOrder)
			},
			build: e.buildAddToCart,
		},
		{
			kind: models.KindCreateOrder,
			match: func(norm string) bool { return containsKeyword(norm, kw.CreateOrder) },
			build: e.buildCreateOrder,
		},
		{
			kind: models.KindViewDebt,
			match: func(norm string) bool { return containsKeyword(norm, kw.ViewDebt) },
			build: e.buildViewDebt,
		},
		{
			kind: models.KindViewReport,
			match: func(norm string) bool { return containsKeyword(norm, kw.ViewReport) },
			build: e.buildViewReport,
		},
		{
			kind: models.KindSearchProduct,
			match: func(norm string) bool { return containsKeyword(norm, kw.SearchProduct) },
			build: e.buildSearchProduct,
		},
		{
			kind: models.KindSearchCustomer,
			match: func(norm string) bool { return containsKeyword(norm, kw.SearchCustomer) },
			build: e.buildSearchCustomer,
		},
	}
}

// compilePatterns prepares the regexes that extract and strip spans from
// the raw (tone-bearing) transcript.
func (e *Engine) compilePatterns() {
	kw := e.loc.Keywords

	// The captured reference span is capped at two words so a spoken
	// order without a pause ("cho tiệm Hồng bột mì") does not swallow the
	// product names; longer customer names are caught by the whole-name
	// substring fallback in extractCustomer.
	refAlt := phraseAlternation(kw.CustomerRef)
	e.custRefRe = regexp.MustCompile(`(?i)(?:^|\s)(?:` + refAlt + `)\s+([^\s,\d]+(?:\s+[^\s,\d]+)?)`)
	e.searchProductStripRe = regexp.MustCompile(`(?i)` + phraseAlternation(kw.SearchProduct))
	e.searchCustomerStripRe = regexp.MustCompile(`(?i)` + phraseAlternation(kw.SearchCustomer))
}

// Classify runs the rule table over one transcript. Pure with respect to
// the snapshot; unmatched input yields the Unknown variant, never an
// error.
func (e *Engine) Classify(transcript string) models.Command {
	e.mu.RLock()
	res := e.resolver
	e.mu.RUnlock()

	norm := textnorm.Normalize(transcript)
	for _, r := range e.rules {
		if r.match(norm) {
			return r.build(transcript, norm, res)
		}
	}
	return models.Command{Kind: models.KindUnknown, Message: UnknownHelp}
}

func (e *Engine) buildAddToCart(raw, norm string, r *resolver.Resolver) models.Command {
	return models.Command{
		Kind:  models.KindAddToCart,
		Items: e.resolveItems(raw, r),
	}
}

func (e *Engine) buildCreateOrder(raw, norm string, r *resolver.Resolver) models.Command {
	cmd := models.Command{
		Kind:  models.KindCreateOrder,
		Items: e.resolveItems(raw, r),
	}
	// Customer is optional: an ambiguous utterance is still a valid order,
	// the UI asks afterwards.
	if c := e.extractCustomer(raw, norm, r); c != nil {
		cmd.CustomerID = &c.ID
		cmd.CustomerName = c.Name
	}
	return cmd
}

func (e *Engine) buildViewDebt(raw, norm string, r *resolver.Resolver) models.Command {
	cmd := models.Command{Kind: models.KindViewDebt}
	if c := e.customerBySubstring(norm); c != nil {
		cmd.CustomerID = &c.ID
		cmd.CustomerName = c.Name
	}
	if m := debtMonthRe.FindStringSubmatch(norm); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			cmd.Period.Month = v
		}
	}
	if m := debtYearRe.FindStringSubmatch(norm); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			cmd.Period.Year = v
		}
	}
	return cmd
}

func (e *Engine) buildViewReport(raw, norm string, r *resolver.Resolver) models.Command {
	period := models.PeriodToday
	if containsKeyword(norm, e.loc.Keywords.ReportMonth) {
		period = models.PeriodMonth
	}
	if containsKeyword(norm, e.loc.Keywords.ReportWeek) {
		period = models.PeriodWeek
	}
	return models.Command{Kind: models.KindViewReport, PeriodType: period}
}

func (e *Engine) buildSearchProduct(raw, norm string, r *resolver.Resolver) models.Command {
	query := strings.TrimSpace(e.searchProductStripRe.ReplaceAllString(raw, " "))
	cmd := models.Command{Kind: models.KindSearchProduct, Query: query}
	if p := r.FindProduct(query); p != nil {
		cmd.ProductID = &p.ID
	}
	return cmd
}

func (e *Engine) buildSearchCustomer(raw, norm string, r *resolver.Resolver) models.Command {
	query := strings.TrimSpace(e.searchCustomerStripRe.ReplaceAllString(raw, " "))
	cmd := models.Command{Kind: models.KindSearchCustomer, Query: query}
	if c := r.ResolveCustomer(query); c != nil {
		cmd.CustomerID = &c.ID
		cmd.CustomerName = c.Name
	}
	return cmd
}

// resolveItems splits the transcript into item spans and resolves each.
// Unresolvable spans are skipped; a command with zero items is valid.
func (e *Engine) resolveItems(raw string, r *resolver.Resolver) []models.ParsedItem {
	var items []models.ParsedItem
	for _, span := range e.segmenter.SplitItems(raw) {
		if item := r.ResolveProduct(span); item != nil {
			items = append(items, *item)
		}
	}
	return items
}

// extractCustomer tries a keyword-prefixed reference span first ("cho tiệm
// Hồng ..."), then a direct substring hit of any known customer name.
func (e *Engine) extractCustomer(raw, norm string, r *resolver.Resolver) *models.Customer {
	if m := e.custRefRe.FindStringSubmatch(raw); m != nil {
		span := e.stripHonorifics(strings.TrimSpace(m[1]))
		if c := r.ResolveCustomer(span); c != nil {
			return c
		}
	}
	return e.customerBySubstring(norm)
}

func (e *Engine) customerBySubstring(norm string) *models.Customer {
	e.mu.RLock()
	customers := e.customers
	e.mu.RUnlock()

	for _, c := range customers {
		name := textnorm.Normalize(c.Name)
		if name != "" && strings.Contains(norm, name) {
			found := c
			return &found
		}
	}
	return nil
}

// stripHonorifics drops leading address words ("tiệm", "anh", ...) from a
// captured customer span so short bare names still match.
func (e *Engine) stripHonorifics(span string) string {
	fields := strings.Fields(span)
	for len(fields) > 1 {
		lead := textnorm.Normalize(fields[0])
		stripped := false
		for _, h := range e.loc.Keywords.Honorifics {
			if lead == textnorm.Normalize(h) {
				fields = fields[1:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Join(fields, " ")
}

// containsKeyword matches multi-word keywords as substrings of the
// normalized transcript and single words as whole tokens, which keeps a
// keyword like "nợ" from firing inside unrelated words.
func containsKeyword(norm string, keywords []string) bool {
	for _, kw := range keywords {
		k := textnorm.Normalize(kw)
		if k == "" {
			continue
		}
		if strings.Contains(k, " ") {
			if strings.Contains(norm, k) {
				return true
			}
			continue
		}
		for _, tok := range strings.Fields(norm) {
			if tok == k {
				return true
			}
		}
	}
	return false
}

// hasKeywordPrefix reports whether the normalized transcript starts with
// one of the keywords, at a word boundary.
func hasKeywordPrefix(norm string, keywords []string) bool {
	for _, kw := range keywords {
		k := textnorm.Normalize(kw)
		if k == "" {
			continue
		}
		if norm == k || strings.HasPrefix(norm, k+" ") {
			return true
		}
	}
	return false
}

func phraseAlternation(phrases []string) string {
	var alts []string
	for _, p := range phrases {
		alts = append(alts, regexp.QuoteMeta(p), regexp.QuoteMeta(textnorm.Normalize(p)))
	}
	return strings.Join(alts, "|")
}
