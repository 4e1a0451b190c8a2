package sim

import (
	"github.com/sirupsen/logrus"
)

// Orchestrator sequences auction rounds strictly back-to-back: a new
// round starts one cooldown after the previous round's terminal
// transition, until the configured item count completes. Rounds never
// overlap and share no price state; only the arbiter persists between
// them, and it carries nothing across holds.
type Orchestrator struct {
	Items     int
	Completed int
	Current   *Round
}

// NewOrchestrator creates an orchestrator for the given item count.
func NewOrchestrator(items int) *Orchestrator {
	return &Orchestrator{Items: items}
}

// Start schedules the first round at the current clock.
func (o *Orchestrator) Start(s *Simulator) {
	s.Schedule(&startRoundEvent{at: s.Clock, id: 1})
}

// roundFinished is invoked by a round's terminal transition.
func (o *Orchestrator) roundFinished(s *Simulator, r *Round) {
	o.Completed++
	o.Current = nil
	if o.Completed < o.Items {
		s.Schedule(&startRoundEvent{at: s.Clock + s.Config.Round.Cooldown, id: r.ID + 1})
		return
	}
	logrus.Infof("all %d rounds completed at t=%.2f", o.Completed, s.Clock)
}

// startRoundEvent opens the next round after the market pause.
type startRoundEvent struct {
	at float64
	id int
}

func (e *startRoundEvent) Timestamp() float64 { return e.at }
func (e *startRoundEvent) Priority() int      { return PriorityRound }

func (e *startRoundEvent) Execute(s *Simulator) {
	r := newRound(s, e.id)
	s.Orchestrator.Current = r
	r.open(s)
}
