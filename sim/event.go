package sim

// Event defines the interface for all simulation events.
// Each event carries a virtual timestamp and an Execute method that
// advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	// Priority breaks ties between events scheduled at the same instant.
	// Lower values run first. Round bookkeeping runs at PriorityRound so
	// terminal transitions land before bidder wake-ups at tied timestamps.
	Priority() int
	Execute(*Simulator)
}

const (
	// PriorityRound is used by orchestrator, round and watchdog events.
	PriorityRound = 0
	// PriorityBidder is used by bidder wake-ups, spawns and bid commits.
	PriorityBidder = 1
)

// queuedEvent pairs an Event with the monotonic sequence number assigned
// at scheduling time, the final deterministic tie-breaker.
type queuedEvent struct {
	event Event
	seq   uint64
}

// eventQueue implements heap.Interface.
// Ordering: timestamp → priority → scheduling sequence.
type eventQueue []queuedEvent

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	ei, ej := eq[i].event, eq[j].event
	if ei.Timestamp() != ej.Timestamp() {
		return ei.Timestamp() < ej.Timestamp()
	}
	if ei.Priority() != ej.Priority() {
		return ei.Priority() < ej.Priority()
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}
