package domain

// Stats aggregates the permanent ticket log.
type Stats struct {
	IssuedTotal            int
	CompletedTotal         int
	PriorityIssuedTotal    int
	PriorityCompletedTotal int
}

// CallResult describes the outcome of calling the next ticket.
type CallResult struct {
	Ticket     *Ticket
	CounterID  string
	QueueEmpty bool
}

// Panel is the passive display view of the counter.
type Panel struct {
	CurrentNumber string
	CounterID     string
	RecentCalls   []string
	StatusMessage string
	NextTurn      string
	QueueCounts   map[TicketClass]int
	Serving       *Ticket
}
