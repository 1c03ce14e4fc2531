package counter

import (
	"fmt"
	"time"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// numberDateLayout renders the YYMMDD prefix of a ticket number.
const numberDateLayout = "060102"

// Sequencer mints ticket numbers from one counter per class.
// Counters start at zero and are never reset, not even when the date changes.
// Sequencer is not safe for concurrent use; the Dispatcher serializes access.
type Sequencer struct {
	counters map[domain.TicketClass]int
	now      func() time.Time
}

// NewSequencer builds a sequencer stamping numbers with the given clock.
func NewSequencer(now func() time.Time) *Sequencer {
	if now == nil {
		now = time.Now
	}
	return &Sequencer{
		counters: make(map[domain.TicketClass]int, len(domain.TicketClasses)),
		now:      now,
	}
}

// Next increments the class counter and returns the formatted number.
func (s *Sequencer) Next(class domain.TicketClass) string {
	s.counters[class]++
	return fmt.Sprintf("%s-%s%02d", s.now().Format(numberDateLayout), class.Code(), s.counters[class])
}

// Issued returns how many numbers have been minted for class.
func (s *Sequencer) Issued(class domain.TicketClass) int {
	return s.counters[class]
}
