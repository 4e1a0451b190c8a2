package sim

import (
	"github.com/sirupsen/logrus"
)

// watchdogEvent is the first-bid grace monitor: armed once at round open,
// it fires at start + grace timeout. A round still Open with zero
// recorded bids is forced into Discarded with no winner; a round that saw
// a bid (or already went terminal) makes the watchdog a no-op. The race
// between first bid and expiry is resolved by whichever event the engine
// delivers first, and both sides are idempotent against the other.
type watchdogEvent struct {
	at    float64
	round *Round
}

func (e *watchdogEvent) Timestamp() float64 { return e.at }
func (e *watchdogEvent) Priority() int      { return PriorityRound }

func (e *watchdogEvent) Execute(s *Simulator) {
	r := e.round
	if r.Terminal() || r.BidCount > 0 {
		return
	}
	logrus.Infof("round %d: no bid within grace window of %.2f, discarding",
		r.ID, s.Config.Round.GraceTimeout)
	r.discard(s)
}
