package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"github.com/auction-sim/auction-sim/sim/trace"
)

// Simulator is the core object that holds virtual time, the event loop,
// and the shared auction state (arbiter, statistics, bid trace).
type Simulator struct {
	Clock float64
	// queue holds all pending events ordered by (time, priority, seq).
	queue eventQueue
	seq   uint64

	Config  Config
	RNG     *PartitionedRNG
	Arbiter *BiddingArbiter
	Metrics *Metrics
	Trace   *trace.AuctionTrace

	Orchestrator *Orchestrator
}

// NewSimulator builds a simulator from a validated configuration.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		queue:   make(eventQueue, 0),
		Config:  cfg,
		RNG:     NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		Arbiter: NewBiddingArbiter(),
		Metrics: NewMetrics(),
		Trace:   trace.NewAuctionTrace(),
	}
	s.Orchestrator = NewOrchestrator(cfg.Items)
	return s, nil
}

// Schedule pushes an event into the simulator's event queue.
func (s *Simulator) Schedule(ev Event) {
	s.seq++
	heap.Push(&s.queue, queuedEvent{event: ev, seq: s.seq})
}

// Run drives the event loop until no events remain. The orchestrator
// stops scheduling once the configured item count completes, so the
// queue drains naturally.
func (s *Simulator) Run() {
	s.Orchestrator.Start(s)
	s.drain()
}

// drain executes pending events in (time, priority, sequence) order.
func (s *Simulator) drain() {
	for len(s.queue) > 0 {
		qe := heap.Pop(&s.queue).(queuedEvent)
		ev := qe.event
		if ev.Timestamp() < s.Clock {
			logrus.Panicf("event scheduled in the past: %.4f < clock %.4f", ev.Timestamp(), s.Clock)
		}
		s.Clock = ev.Timestamp()
		ev.Execute(s)
	}
	logrus.Infof("event queue drained at t=%.2f after %d rounds", s.Clock, s.Orchestrator.Completed)
}
