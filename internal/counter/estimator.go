package counter

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// AbsentDurationLabel is attached to tickets whose holder never showed up.
const AbsentDurationLabel = "0 min"

// UnknownDurationLabel is returned when no ticket matches an estimate lookup.
const UnknownDurationLabel = "-"

const (
	priorityBaseMinutes   = 15.0
	prioritySpreadMinutes = 5.0

	normalABriefMinutes  = 0.8
	normalALongMinutes   = 5.0
	normalABriefChance   = 0.95
	normalBBaseMinutes   = 5.0
	normalBSpreadMinutes = 3.0
)

// Estimator draws randomized service durations per ticket class.
// The values are display labels only and never feed dispatch decisions.
type Estimator struct {
	rnd *rand.Rand
}

// NewEstimator seeds the random source; a zero seed uses the current time.
func NewEstimator(seed int64) *Estimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Estimator{rnd: rand.New(rand.NewSource(seed))}
}

// Minutes draws a duration in minutes for class.
func (e *Estimator) Minutes(class domain.TicketClass) float64 {
	switch class {
	case domain.TicketClassPriority:
		return priorityBaseMinutes + (e.rnd.Float64()*2*prioritySpreadMinutes - prioritySpreadMinutes)
	case domain.TicketClassNormalA:
		if e.rnd.Float64() < normalABriefChance {
			return normalABriefMinutes
		}
		return normalALongMinutes
	case domain.TicketClassNormalB:
		return normalBBaseMinutes + (e.rnd.Float64()*2*normalBSpreadMinutes - normalBSpreadMinutes)
	}
	return 0
}

// Estimate draws a duration for class and renders it as a label.
func (e *Estimator) Estimate(class domain.TicketClass) string {
	return FormatMinutes(e.Minutes(class))
}

// FormatMinutes renders minutes with one decimal digit, e.g. "12.3 min".
func FormatMinutes(minutes float64) string {
	return decimal.NewFromFloat(minutes).StringFixed(1) + " min"
}
