package counter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSequencer_FormatsDatePrefixedNumbers(t *testing.T) {
	seq := NewSequencer(fixedClock(time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)))

	assert.Equal(t, "261018-SP01", seq.Next(domain.TicketClassPriority))
	assert.Equal(t, "261018-SP02", seq.Next(domain.TicketClassPriority))
	assert.Equal(t, "261018-SE01", seq.Next(domain.TicketClassNormalA))
	assert.Equal(t, "261018-SG01", seq.Next(domain.TicketClassNormalB))
	assert.Equal(t, 2, seq.Issued(domain.TicketClassPriority))
}

func TestSequencer_DistinctIncreasingPerClass(t *testing.T) {
	seq := NewSequencer(nil)
	pattern := regexp.MustCompile(`^\d{6}-(SP|SE|SG)\d{2,}$`)

	for _, class := range domain.TicketClasses {
		seen := map[string]struct{}{}
		prev := ""
		for i := 0; i < 30; i++ {
			number := seq.Next(class)
			require.Regexp(t, pattern, number)
			_, dup := seen[number]
			require.False(t, dup, "duplicate number %s", number)
			seen[number] = struct{}{}
			if prev != "" {
				assert.Less(t, prev, number)
			}
			prev = number
		}
	}
}

func TestSequencer_DoesNotResetOnDateRollover(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)
	seq := NewSequencer(func() time.Time { return now })

	assert.Equal(t, "261018-SG01", seq.Next(domain.TicketClassNormalB))
	now = now.Add(2 * time.Minute)
	assert.Equal(t, "261019-SG02", seq.Next(domain.TicketClassNormalB))
}

func TestSequencer_GrowsPastTwoDigits(t *testing.T) {
	seq := NewSequencer(fixedClock(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	var last string
	for i := 0; i < 100; i++ {
		last = seq.Next(domain.TicketClassNormalA)
	}
	assert.Equal(t, "260102-SE100", last)
}
