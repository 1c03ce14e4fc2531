package counter

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/counterdesk/counter-dispatch/internal/domain"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

const (
	defaultCounterID   = "01"
	defaultHistorySize = 5

	emptyPanelNumber  = "----"
	emptyPanelCounter = "--"

	statusReady     = "System ready."
	statusEmpty     = "Queue empty."
	statusFree      = "Counter free."
	statusServingFn = "Serving: %s"
)

// ErrCounterBusy rejects a call while a ticket is still being served.
var ErrCounterBusy = apperrors.NewDomainError(
	"COUNTER_BUSY",
	"finish the current service before calling the next ticket",
	http.StatusConflict,
	nil,
)

// Options configures a Dispatcher.
type Options struct {
	CounterID   string
	HistorySize int
	Seed        int64
	Clock       func() time.Time
}

// Dispatcher runs one service counter: it issues tickets, selects the next
// one to serve, tracks the ticket in service and keeps the permanent log.
// All methods are safe for concurrent use; each is a single critical section.
type Dispatcher struct {
	mu sync.Mutex

	counterID   string
	historySize int
	now         func() time.Time

	sequencer *Sequencer
	estimator *Estimator
	queue     *Queue
	policy    *AlternatingPolicy
	report    *Report

	current       *domain.Ticket
	panelNumber   string
	panelCounter  string
	history       []string
	statusMessage string
}

// NewDispatcher builds an idle dispatcher with empty queues.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.CounterID == "" {
		opts.CounterID = defaultCounterID
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = defaultHistorySize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Dispatcher{
		counterID:     opts.CounterID,
		historySize:   opts.HistorySize,
		now:           opts.Clock,
		sequencer:     NewSequencer(opts.Clock),
		estimator:     NewEstimator(opts.Seed),
		queue:         NewQueue(),
		policy:        NewAlternatingPolicy(),
		report:        NewReport(),
		panelNumber:   emptyPanelNumber,
		panelCounter:  emptyPanelCounter,
		statusMessage: statusReady,
	}
}

// CounterID returns the identifier shown on the panel while serving.
func (d *Dispatcher) CounterID() string {
	return d.counterID
}

// IssueTicket mints a ticket of class and places it in the queue and the log.
func (d *Dispatcher) IssueTicket(class domain.TicketClass) (domain.Ticket, error) {
	if !class.Valid() {
		return domain.Ticket{}, apperrors.NewValidationError("unknown ticket class", map[string]any{"class": string(class)})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ticket := &domain.Ticket{
		Number:            d.sequencer.Next(class),
		Class:             class,
		IssuedAt:          d.now(),
		Status:            domain.TicketStatusWaiting,
		SimulatedDuration: d.estimator.Estimate(class),
	}
	d.queue.Enqueue(ticket)
	d.report.Record(ticket)
	return ticket.Clone(), nil
}

// CallNext moves the next selected ticket into service.
// It returns ErrCounterBusy while a ticket is in service and a result with
// QueueEmpty set when nothing is waiting.
func (d *Dispatcher) CallNext() (domain.CallResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil {
		return domain.CallResult{}, ErrCounterBusy
	}

	next := d.policy.SelectNext(d.queue)
	if next == nil {
		d.statusMessage = statusEmpty
		return domain.CallResult{QueueEmpty: true}, nil
	}

	d.queue.Remove(next.Number)
	started := d.now()
	next.ServiceStartedAt = &started
	next.Status = domain.TicketStatusInService
	d.current = next

	d.updatePanel(next)
	d.statusMessage = fmt.Sprintf(statusServingFn, next.Number)

	called := next.Clone()
	return domain.CallResult{Ticket: &called, CounterID: d.panelCounter}, nil
}

// Finalize closes the current service with outcome. It returns nil when the
// counter is idle.
func (d *Dispatcher) Finalize(outcome domain.ServiceOutcome) (*domain.Ticket, error) {
	if !outcome.Valid() {
		return nil, apperrors.NewValidationError("unknown service outcome", map[string]any{"outcome": string(outcome)})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.current
	if t == nil {
		return nil, nil
	}

	ended := d.now()
	t.ServiceEndedAt = &ended
	t.Status = outcome.Status()
	if outcome == domain.OutcomeAbsent {
		t.EstimatedDuration = AbsentDurationLabel
	} else {
		t.EstimatedDuration = d.estimator.Estimate(t.Class)
	}

	d.current = nil
	d.statusMessage = statusFree

	finalized := t.Clone()
	return &finalized, nil
}

// Stats returns live totals computed from the permanent log.
func (d *Dispatcher) Stats() domain.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.report.Stats()
}

// EstimatedDuration draws a fresh estimate for the ticket with number.
func (d *Dispatcher) EstimatedDuration(number string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := d.report.Find(number)
	if t == nil {
		return UnknownDurationLabel, false
	}
	return d.estimator.Estimate(t.Class), true
}

// Ticket returns a copy of the logged ticket with number.
func (d *Dispatcher) Ticket(number string) (domain.Ticket, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := d.report.Find(number)
	if t == nil {
		return domain.Ticket{}, false
	}
	return t.Clone(), true
}

// Tickets returns copies of every issued ticket in issuance order.
func (d *Dispatcher) Tickets() []domain.Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.report.Tickets()
}

// QueueCounts returns the number of waiting tickets per class.
func (d *Dispatcher) QueueCounts() map[domain.TicketClass]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Counts()
}

// RecentCalls returns previously displayed numbers, most recent first.
func (d *Dispatcher) RecentCalls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.history...)
}

// Current returns a copy of the ticket in service.
func (d *Dispatcher) Current() (domain.Ticket, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return domain.Ticket{}, false
	}
	return d.current.Clone(), true
}

// StatusMessage returns the human-readable state of the counter.
func (d *Dispatcher) StatusMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusMessage
}

// Panel returns a consistent snapshot of every display value.
func (d *Dispatcher) Panel() domain.Panel {
	d.mu.Lock()
	defer d.mu.Unlock()

	panel := domain.Panel{
		CurrentNumber: d.panelNumber,
		CounterID:     d.panelCounter,
		RecentCalls:   append([]string(nil), d.history...),
		StatusMessage: d.statusMessage,
		NextTurn:      d.policy.TurnLabel(),
		QueueCounts:   d.queue.Counts(),
	}
	if d.current != nil {
		serving := d.current.Clone()
		panel.Serving = &serving
	}
	return panel
}

func (d *Dispatcher) updatePanel(t *domain.Ticket) {
	if d.panelNumber != emptyPanelNumber {
		d.history = append([]string{d.panelNumber}, d.history...)
		if len(d.history) > d.historySize {
			d.history = d.history[:d.historySize]
		}
	}
	d.panelNumber = t.Number
	d.panelCounter = d.counterID
}
