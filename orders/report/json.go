package report

import (
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

const (
	eventStarting    = "starting"
	eventWaiting     = "waiting"
	eventReady       = "ready"
	eventUnreachable = "unreachable"
	eventConnected   = "connected"
	eventOrder       = "order"
	eventStopped     = "stopped"
)

// Event is one line of JSONReporter output.
type Event struct {
	Event           string        `json:"event"`
	Time            time.Time     `json:"time"`
	Attempt         int           `json:"attempt,omitempty"`
	MaxAttempts     int           `json:"max_attempts,omitempty"`
	Error           string        `json:"error,omitempty"`
	Sequence        int           `json:"sequence,omitempty"`
	Order           *orders.Order `json:"order,omitempty"`
	Total           string        `json:"total,omitempty"`
	OrdersGenerated *int          `json:"orders_generated,omitempty"`
}

// JSONReporter writes one JSON encoded Event per line.
type JSONReporter struct {
	encoder *jsoniter.Encoder
	now     func() time.Time
	mu      sync.Mutex
}

// NewJSONReporter creates a JSONReporter writing to out.
func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{
		encoder: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out),
		now:     time.Now,
	}
}

// ProbeFailed implements readiness.Observer.
func (r *JSONReporter) ProbeFailed(attempt, maxAttempts int, err error) {
	event := Event{Event: eventWaiting, Attempt: attempt, MaxAttempts: maxAttempts}
	if err != nil {
		event.Error = err.Error()
	}

	r.write(event)
}

// ProbeSucceeded implements readiness.Observer.
func (r *JSONReporter) ProbeSucceeded(attempt int) {
	r.write(Event{Event: eventReady, Attempt: attempt})
}

// ReportStarting writes a starting event.
func (r *JSONReporter) ReportStarting() {
	r.write(Event{Event: eventStarting})
}

// ReportUnreachable writes an unreachable event.
func (r *JSONReporter) ReportUnreachable() {
	r.write(Event{Event: eventUnreachable})
}

// ReportConnected writes a connected event.
func (r *JSONReporter) ReportConnected() {
	r.write(Event{Event: eventConnected})
}

// ReportOrder writes an order event with the order and its total.
func (r *JSONReporter) ReportOrder(sequence int, order orders.Order) {
	r.write(Event{
		Event:    eventOrder,
		Sequence: sequence,
		Order:    &order,
		Total:    order.Total().StringFixed(pricePlaces),
	})
}

// ReportStopped writes a stopped event with the final count, zero included.
func (r *JSONReporter) ReportStopped(ordersGenerated int) {
	r.write(Event{Event: eventStopped, OrdersGenerated: &ordersGenerated})
}

func (r *JSONReporter) write(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.Time = r.now().UTC()
	_ = r.encoder.Encode(event)
}
