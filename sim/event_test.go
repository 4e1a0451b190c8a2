package sim

import (
	"testing"
)

// recordingEvent appends its label to a shared log when executed.
type recordingEvent struct {
	at       float64
	priority int
	label    string
	log      *[]string
}

func (e *recordingEvent) Timestamp() float64 { return e.at }
func (e *recordingEvent) Priority() int      { return e.priority }
func (e *recordingEvent) Execute(s *Simulator) {
	*e.log = append(*e.log, e.label)
}

func TestEventQueue_OrdersByTimestamp(t *testing.T) {
	// GIVEN events scheduled out of order
	s := newTestSimulator(t, DefaultConfig())
	var log []string
	s.Schedule(&recordingEvent{at: 5, priority: PriorityBidder, label: "late", log: &log})
	s.Schedule(&recordingEvent{at: 1, priority: PriorityBidder, label: "early", log: &log})
	s.Schedule(&recordingEvent{at: 3, priority: PriorityBidder, label: "middle", log: &log})

	// WHEN the queue drains
	s.drain()

	// THEN events execute in timestamp order and the clock follows
	want := []string{"early", "middle", "late"}
	for i, label := range want {
		if log[i] != label {
			t.Errorf("order[%d]: got %s, want %s", i, log[i], label)
		}
	}
	if s.Clock != 5 {
		t.Errorf("final clock: got %v, want 5", s.Clock)
	}
}

func TestEventQueue_TiedTimestamp_RoundPriorityFirst(t *testing.T) {
	// GIVEN a bidder event scheduled before a round event at the same time
	s := newTestSimulator(t, DefaultConfig())
	var log []string
	s.Schedule(&recordingEvent{at: 2, priority: PriorityBidder, label: "bidder", log: &log})
	s.Schedule(&recordingEvent{at: 2, priority: PriorityRound, label: "round", log: &log})

	// WHEN the queue drains
	s.drain()

	// THEN round bookkeeping runs before the bidder wake-up
	if log[0] != "round" || log[1] != "bidder" {
		t.Errorf("tied-timestamp order: got %v, want [round bidder]", log)
	}
}

func TestEventQueue_TiedTimestampAndPriority_FIFO(t *testing.T) {
	// GIVEN three bidder events at the same instant
	s := newTestSimulator(t, DefaultConfig())
	var log []string
	for _, label := range []string{"a", "b", "c"} {
		s.Schedule(&recordingEvent{at: 1, priority: PriorityBidder, label: label, log: &log})
	}

	// WHEN the queue drains
	s.drain()

	// THEN scheduling order is preserved
	if log[0] != "a" || log[1] != "b" || log[2] != "c" {
		t.Errorf("FIFO order: got %v, want [a b c]", log)
	}
}
