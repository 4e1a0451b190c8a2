package sim

import (
	"github.com/sirupsen/logrus"
)

// Strategy identifies a bidder's fixed stochastic policy.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyAgent
	StrategyRatchet
	StrategySniper
)

func (s Strategy) String() string {
	switch s {
	case StrategyAgent:
		return "agent"
	case StrategyRatchet:
		return "ratchet"
	case StrategySniper:
		return "sniper"
	default:
		return "none"
	}
}

// BidderState tracks a bidder through its decision state machine.
type BidderState int

const (
	// BidderDeciding is the default state between wake-ups.
	BidderDeciding BidderState = iota
	// BidderWaitingArbiter means the bidder is queued for exclusive access.
	BidderWaitingArbiter
	// BidderHolding means the bidder holds the arbiter.
	BidderHolding
	// BidderTerminated is terminal: the bidder never submits again.
	BidderTerminated
)

// Bidder is one candidate buyer inside a single round.
//
// Valuation is the bidder's private ceiling, sampled once at creation and
// never revealed to competitors; it may be +Inf for the irrational ratchet
// variant. Patience decays over the round and is recomputed only forward
// in time. The round back-reference is non-owning: the round always
// outlives its bidders and terminates them on any terminal transition.
type Bidder struct {
	ID        string
	Strategy  Strategy
	Valuation float64
	Patience  float64
	// Leading is true only while this bidder holds the highest accepted
	// bid. Informational: the round's winner-of-record is authoritative.
	Leading bool

	round  *Round
	policy bidPolicy
	state  BidderState

	// abandonThreshold is the exponential patience floor sampled at
	// creation; decaying below it terminates the bidder.
	abandonThreshold float64
	lastPatienceAt   float64
}

// decision is the outcome of one policy tick.
type decision struct {
	attempt   bool    // contend for the arbiter now
	terminate bool    // leave the round for good
	wakeAfter float64 // next poll delay when neither of the above
	reason    string  // termination reason, for the log
}

// bidPolicy is the strategy-specific behavior layered over the common
// bidder state machine.
type bidPolicy interface {
	// firstWake returns the absolute time of the bidder's first decision.
	firstWake(s *Simulator, b *Bidder) float64
	// decide runs one decision tick while the round is still open.
	decide(s *Simulator, b *Bidder) decision
	// afterAttempt runs once the arbiter resolved a bid attempt.
	afterAttempt(s *Simulator, b *Bidder, placed bool) decision
}

// bidderWakeEvent resumes a suspended bidder at its scheduled time.
type bidderWakeEvent struct {
	at     float64
	bidder *Bidder
}

func (e *bidderWakeEvent) Timestamp() float64 { return e.at }
func (e *bidderWakeEvent) Priority() int      { return PriorityBidder }

func (e *bidderWakeEvent) Execute(s *Simulator) {
	b := e.bidder
	// Stale wake: the bidder terminated or is queued on the arbiter.
	if b.state != BidderDeciding {
		return
	}
	if b.round.Terminal() {
		b.terminate(s, "round closed")
		return
	}
	b.applyDecision(s, b.policy.decide(s, b))
}

// applyDecision advances the bidder per one policy tick.
func (b *Bidder) applyDecision(s *Simulator, d decision) {
	switch {
	case d.terminate:
		b.terminate(s, d.reason)
	case d.attempt:
		b.state = BidderWaitingArbiter
		s.Arbiter.Request(s, b)
	default:
		b.scheduleWake(s, d.wakeAfter)
	}
}

// bidResolved is invoked by the arbiter once a bid attempt concluded,
// successfully or not.
func (b *Bidder) bidResolved(s *Simulator, placed bool) {
	if b.state == BidderTerminated {
		return
	}
	b.state = BidderDeciding
	b.applyDecision(s, b.policy.afterAttempt(s, b, placed))
}

// terminate moves the bidder to its terminal state. Idempotent; once
// terminated a bidder never submits another bid (every wake and arbiter
// path checks state first).
func (b *Bidder) terminate(s *Simulator, reason string) {
	if b.state == BidderTerminated {
		return
	}
	b.state = BidderTerminated
	logrus.Debugf("bidder %s (%s) terminated at t=%.2f: %s", b.ID, b.Strategy, s.Clock, reason)
}

func (b *Bidder) scheduleWake(s *Simulator, delay float64) {
	s.Schedule(&bidderWakeEvent{at: s.Clock + delay, bidder: b})
}

// bidFits reports whether one more increment would keep the price
// strictly below the bidder's valuation. The strict rule is applied
// uniformly, both at decision time and at arbiter grant time.
func (b *Bidder) bidFits(s *Simulator) bool {
	price := b.round.CurrentPrice
	return price+price*s.Config.Round.IncrementFraction < b.Valuation
}
