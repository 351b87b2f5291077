// Package ui is the interactive console for exercising the interpretation
// engine: type a transcript, see the structured command it produces. In a
// deployment the transcripts come from the speech recognizer instead; the
// REPL feeds typed lines through the same dispatch path.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vietshop/voicepilot/internal/catalog"
	"github.com/vietshop/voicepilot/internal/intent"
	"github.com/vietshop/voicepilot/internal/session"
	"github.com/vietshop/voicepilot/pkg/models"
)

const maxSuggestions = 3

// REPL reads transcript lines and prints interpretation results. Lines
// flow through a capture session the same way recognizer fragments do.
type REPL struct {
	engine  *intent.Engine
	store   *catalog.Store
	session *session.Session
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a REPL over stdin/stdout.
func NewREPL(engine *intent.Engine, store *catalog.Store) *REPL {
	return &REPL{engine: engine, store: store, session: session.New(), in: os.Stdin, out: os.Stdout}
}

// Start begins the interactive loop. A line may end with "@0.8" to set
// the hypothesis confidence (default 1.0, typed input is certain). A
// trailing "..." holds the utterance open so the next line continues it,
// like a breath pause mid-sentence.
func (r *REPL) Start() error {
	fmt.Fprintln(r.out, "VoicePilot - Vietnamese voice commands for your shop")
	fmt.Fprintln(r.out, "Type a transcript (append @0.5 to simulate low confidence, end with ... to continue on the next line), 'reload' to re-read the catalog, 'exit' to quit")
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit":
			return nil
		case "reload":
			if err := r.reload(); err != nil {
				fmt.Fprintf(r.out, "reload failed: %v\n", err)
			} else {
				fmt.Fprintln(r.out, "catalog reloaded")
			}
			continue
		}

		fragment, confidence := splitConfidence(line)
		fragment, paused := strings.CutSuffix(fragment, "...")
		r.session.Push(models.SpeechHypothesis{
			Transcript: fragment,
			Confidence: confidence,
			IsFinal:    true,
		})
		if paused {
			continue
		}

		transcript, confidence, ok := r.session.Flush()
		if !ok {
			continue
		}
		cmd := r.engine.Dispatch(transcript, confidence)
		r.render(cmd)

		if cmd.Kind == models.KindLowConfidence || cmd.Kind == models.KindUnknown {
			if suggestions := r.engine.Suggest(transcript); len(suggestions) > 0 {
				r.renderSuggestions(suggestions)
			}
		}
	}
}

func (r *REPL) reload() error {
	products, err := r.store.Products()
	if err != nil {
		return err
	}
	customers, err := r.store.Customers()
	if err != nil {
		return err
	}
	r.engine.Reload(products, customers)
	return nil
}

// render prints one command. The switch is exhaustive over the result
// union on purpose: a new variant must be handled here to compile a
// sensible UI.
func (r *REPL) render(cmd models.Command) {
	switch cmd.Kind {
	case models.KindCreateOrder:
		if cmd.CustomerName != "" {
			fmt.Fprintf(r.out, "Đơn hàng cho %s:\n", cmd.CustomerName)
		} else {
			fmt.Fprintln(r.out, "Đơn hàng (chưa rõ khách):")
		}
		r.renderItems(cmd.Items)
	case models.KindAddToCart:
		fmt.Fprintln(r.out, "Thêm vào giỏ:")
		r.renderItems(cmd.Items)
	case models.KindViewDebt:
		fmt.Fprint(r.out, "Xem công nợ")
		if cmd.CustomerName != "" {
			fmt.Fprintf(r.out, " của %s", cmd.CustomerName)
		}
		if cmd.Period.Month > 0 {
			fmt.Fprintf(r.out, " tháng %d", cmd.Period.Month)
		}
		if cmd.Period.Year > 0 {
			fmt.Fprintf(r.out, " năm %d", cmd.Period.Year)
		}
		fmt.Fprintln(r.out)
	case models.KindViewReport:
		fmt.Fprintf(r.out, "Báo cáo: %s\n", cmd.PeriodType)
	case models.KindSearchProduct:
		if cmd.ProductID != nil {
			fmt.Fprintf(r.out, "Sản phẩm #%d (truy vấn %q)\n", *cmd.ProductID, cmd.Query)
		} else {
			fmt.Fprintf(r.out, "Không tìm thấy sản phẩm cho %q\n", cmd.Query)
		}
	case models.KindSearchCustomer:
		if cmd.CustomerID != nil {
			fmt.Fprintf(r.out, "Khách hàng: %s\n", cmd.CustomerName)
		} else {
			fmt.Fprintf(r.out, "Không tìm thấy khách hàng cho %q\n", cmd.Query)
		}
	case models.KindLowConfidence:
		fmt.Fprintf(r.out, "Nghe chưa rõ (độ tin cậy %.2f), vui lòng nói lại\n", cmd.Confidence)
	case models.KindUnknown:
		fmt.Fprintln(r.out, cmd.Message)
	}
}

func (r *REPL) renderItems(items []models.ParsedItem) {
	if len(items) == 0 {
		fmt.Fprintln(r.out, "  (không nhận ra sản phẩm nào)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(r.out, "  %s x%.4g = %.0f\n", item.ProductName, item.Quantity, item.Subtotal)
	}
}

func (r *REPL) renderSuggestions(suggestions []models.Suggestion) {
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	fmt.Fprint(r.out, "Có phải ý bạn là:")
	for i, s := range suggestions {
		if i > 0 {
			fmt.Fprint(r.out, ",")
		}
		fmt.Fprintf(r.out, " %s", s.Name)
	}
	fmt.Fprintln(r.out, "?")
}

// splitConfidence parses an optional trailing "@<float>" marker.
func splitConfidence(line string) (string, float64) {
	if i := strings.LastIndex(line, "@"); i > 0 {
		if conf, err := strconv.ParseFloat(strings.TrimSpace(line[i+1:]), 64); err == nil {
			return strings.TrimSpace(line[:i]), conf
		}
	}
	return line, 1.0
}
