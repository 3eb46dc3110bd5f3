package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

// DefaultCurrencySymbol is appended to every amount unless WithCurrencySymbol says otherwise.
const DefaultCurrencySymbol = "₽"

const (
	msgStarting    = "Starting order generator..."
	msgWaiting     = "Waiting for the database... attempt %d/%d\n"
	msgReady       = "Database is available!"
	msgUnreachable = "Could not connect to the database!"
	msgConnected   = "Connected to the database. Generating orders..."
	msgStopped     = "\nStopping. Total orders generated: %d\n"
	msgOrderLine   = "[%d] %s (%s) - %d pcs x %s%s = %s%s | %s\n"
	pricePlaces    = 2
)

// TextReporter prints human-readable progress lines.
type TextReporter struct {
	out      io.Writer
	currency string
	mu       sync.Mutex
}

// TextOption configures a TextReporter.
type TextOption func(*TextReporter)

// WithCurrencySymbol sets the symbol printed after prices and totals.
func WithCurrencySymbol(symbol string) TextOption {
	return func(r *TextReporter) {
		r.currency = symbol
	}
}

// NewTextReporter creates a TextReporter writing to out.
func NewTextReporter(out io.Writer, options ...TextOption) *TextReporter {
	r := &TextReporter{out: out, currency: DefaultCurrencySymbol}

	for _, option := range options {
		option(r)
	}

	return r
}

// FormatOrder renders one order line including its trailing newline.
func (r *TextReporter) FormatOrder(sequence int, order orders.Order) string {
	return fmt.Sprintf(msgOrderLine,
		sequence,
		order.ProductName,
		order.Category,
		order.Quantity,
		order.Price.StringFixed(pricePlaces), r.currency,
		order.Total().StringFixed(pricePlaces), r.currency,
		order.City)
}

// ProbeFailed implements readiness.Observer.
func (r *TextReporter) ProbeFailed(attempt, maxAttempts int, _ error) {
	r.printf(msgWaiting, attempt, maxAttempts)
}

// ProbeSucceeded implements readiness.Observer.
func (r *TextReporter) ProbeSucceeded(_ int) {
	r.println(msgReady)
}

// ReportStarting prints the start banner.
func (r *TextReporter) ReportStarting() {
	r.println(msgStarting)
}

// ReportUnreachable prints that the store never became ready.
func (r *TextReporter) ReportUnreachable() {
	r.println(msgUnreachable)
}

// ReportConnected prints that generation begins.
func (r *TextReporter) ReportConnected() {
	r.println(msgConnected)
}

// ReportOrder prints one persisted order.
func (r *TextReporter) ReportOrder(sequence int, order orders.Order) {
	r.printf("%s", r.FormatOrder(sequence, order))
}

// ReportStopped prints the final count.
func (r *TextReporter) ReportStopped(ordersGenerated int) {
	r.printf(msgStopped, ordersGenerated)
}

// Output errors are ignored, progress printing must never stop the run.
func (r *TextReporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *TextReporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.out, line)
}
