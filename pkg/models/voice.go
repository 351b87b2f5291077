package models

// Product is one entry of the product catalog snapshot. The interpretation
// engine only ever reads products; ownership stays with the persistence layer.
type Product struct {
	ID    int64   `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
	Unit  string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// Customer is one entry of the customer catalog snapshot.
type Customer struct {
	ID    int64  `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Phone string `yaml:"phone,omitempty" json:"phone,omitempty"`
}

// ParsedItem is a resolved product reference plus its spoken quantity.
// It lives only for the duration of one interpretation.
type ParsedItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// ProductMatch pairs a catalog product with a relevance score. Scores are
// only comparable to each other; bonuses can push them past 1.0.
type ProductMatch struct {
	Product Product
	Score   float64
}

// CommandKind tags the variant of a Command. Consumers are expected to
// switch exhaustively over it.
type CommandKind int

const (
	KindUnknown CommandKind = iota
	KindCreateOrder
	KindAddToCart
	KindViewDebt
	KindViewReport
	KindSearchProduct
	KindSearchCustomer
	KindLowConfidence
)

func (k CommandKind) String() string {
	switch k {
	case KindCreateOrder:
		return "create_order"
	case KindAddToCart:
		return "add_to_cart"
	case KindViewDebt:
		return "view_debt"
	case KindViewReport:
		return "view_report"
	case KindSearchProduct:
		return "search_product"
	case KindSearchCustomer:
		return "search_customer"
	case KindLowConfidence:
		return "low_confidence"
	default:
		return "unknown"
	}
}

// ReportPeriod is the time window of a ViewReport command.
type ReportPeriod string

const (
	PeriodToday ReportPeriod = "today"
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
)

// DebtPeriod is the optional month/year filter of a ViewDebt command.
// Zero values mean "not spoken".
type DebtPeriod struct {
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// Command is the closed result union of one interpretation. Kind determines
// which fields are populated; every other field is left at its zero value.
type Command struct {
	Kind CommandKind `json:"kind"`

	// CreateOrder, ViewDebt: optional resolved customer.
	CustomerID   *int64 `json:"customer_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`

	// CreateOrder, AddToCart.
	Items []ParsedItem `json:"items,omitempty"`

	// ViewDebt.
	Period DebtPeriod `json:"period,omitempty"`

	// ViewReport.
	PeriodType ReportPeriod `json:"period_type,omitempty"`

	// SearchProduct, SearchCustomer: resolved entity (nil when the fuzzy
	// match came up empty) plus the raw query that was matched.
	ProductID *int64 `json:"product_id,omitempty"`
	Query     string `json:"query,omitempty"`

	// LowConfidence.
	Transcript string  `json:"transcript,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	// Unknown: fixed help message.
	Message string `json:"message,omitempty"`
}

// SuggestionKind distinguishes what a suggestion points at.
type SuggestionKind string

const (
	SuggestProduct  SuggestionKind = "product"
	SuggestCustomer SuggestionKind = "customer"
)

// Suggestion is one "did you mean" entry, ranked by similarity to the
// full transcript.
type Suggestion struct {
	Name  string         `json:"name"`
	Kind  SuggestionKind `json:"kind"`
	Score float64        `json:"score"`
}

// Alternative is a secondary transcript hypothesis from the recognizer.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// SpeechHypothesis is one recognizer event. Only IsFinal hypotheses are
// interpreted; interim ones exist for live display.
type SpeechHypothesis struct {
	Transcript   string        `json:"transcript"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
	IsFinal      bool          `json:"is_final"`
}
