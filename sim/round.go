package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/auction-sim/auction-sim/sim/trace"
)

// RoundStatus tracks a round through its lifecycle. Every round reaches
// exactly one of the two terminal states.
type RoundStatus int

const (
	RoundInitializing RoundStatus = iota
	RoundOpen
	RoundSold
	RoundDiscarded
)

func (rs RoundStatus) String() string {
	switch rs {
	case RoundInitializing:
		return "initializing"
	case RoundOpen:
		return "open"
	case RoundSold:
		return "sold"
	default:
		return "discarded"
	}
}

// Round owns one auction's price state and end time. Current price,
// winner-of-record and status are the only shared mutable fields; bidders
// read them freely but mutate them exclusively through the arbiter's
// critical section (applyBid) and the round's own terminal transitions.
type Round struct {
	ID        int
	StartTime float64
	EndTime   float64

	// RealValue is the item's latent worth; bidder valuations are sampled
	// around it but it is never visible to bidders directly.
	RealValue     float64
	StartingPrice float64
	CurrentPrice  float64

	Status RoundStatus
	Winner Strategy

	BidCount   int
	FirstBidAt float64 // -1 until the first bid lands

	leader  *Bidder
	bidders []*Bidder
}

// newRound samples the item's latent value and opening price. The latent
// value is exponential with a noisy multiplier; the opening price sits
// below fair value (Normal(0.8, 0.2)), floored so a deep negative tail
// draw cannot open a free or negative-priced round.
func newRound(s *Simulator, id int) *Round {
	rng := s.RNG.ForSubsystem(SubsystemMarket)
	cfg := s.Config.Round

	value := sampleExp(rng, cfg.ItemValueMean) * sampleNormal(rng, 1.0, cfg.ValueNoiseSigma)
	value = math.Max(value, 0.01*cfg.ItemValueMean)
	price := value * sampleNormal(rng, 0.8, 0.2)
	price = math.Max(price, 0.05*value)

	return &Round{
		ID:            id,
		StartTime:     s.Clock,
		EndTime:       s.Clock + cfg.Duration,
		RealValue:     value,
		StartingPrice: price,
		CurrentPrice:  price,
		Status:        RoundInitializing,
		Winner:        StrategyNone,
		FirstBidAt:    -1,
		bidders:       make([]*Bidder, 0),
	}
}

// open transitions the round to Open, spawns the bidder population
// generator and the first-bid watchdog, and schedules settlement at the
// round's end time.
func (r *Round) open(s *Simulator) {
	r.Status = RoundOpen
	logrus.Infof("round %d open at t=%.2f: value=%.2f, starting price=%.2f, ends t=%.2f",
		r.ID, s.Clock, r.RealValue, r.StartingPrice, r.EndTime)

	startPopulationGenerator(s, r)
	s.Schedule(&watchdogEvent{at: r.StartTime + s.Config.Round.GraceTimeout, round: r})
	s.Schedule(&roundEndEvent{at: r.EndTime, round: r})
}

// Terminal reports whether the round reached Sold or Discarded.
func (r *Round) Terminal() bool {
	return r.Status == RoundSold || r.Status == RoundDiscarded
}

// Elapsed returns the time since the round opened.
func (r *Round) Elapsed(now float64) float64 {
	return now - r.StartTime
}

// attach registers a spawned bidder so terminal transitions can cancel it.
func (r *Round) attach(b *Bidder) {
	r.bidders = append(r.bidders, b)
}

// applyBid records one accepted price increment. Called only from the
// arbiter's critical section, so increments are serialized by
// construction; the monotonicity check guards against regressions in the
// increment math itself.
func (r *Round) applyBid(s *Simulator, b *Bidder, newPrice float64) {
	if newPrice < r.CurrentPrice {
		logrus.Panicf("round %d: price would decrease %.4f -> %.4f", r.ID, r.CurrentPrice, newPrice)
	}
	if r.FirstBidAt < 0 {
		r.FirstBidAt = s.Clock
	}
	if r.leader != nil {
		r.leader.Leading = false
	}
	r.leader = b
	b.Leading = true
	r.CurrentPrice = newPrice
	r.Winner = b.Strategy
	r.BidCount++

	s.Metrics.TotalBids++
	s.Trace.RecordBid(trace.BidRecord{
		RoundID:  r.ID,
		Elapsed:  r.Elapsed(s.Clock),
		Price:    newPrice,
		Strategy: b.Strategy.String(),
	})
	logrus.Debugf("round %d: bid #%d by %s (%s) -> price %.2f",
		r.ID, r.BidCount, b.ID, b.Strategy, newPrice)
}

// roundEndEvent settles the round at its scheduled end time.
type roundEndEvent struct {
	at    float64
	round *Round
}

func (e *roundEndEvent) Timestamp() float64 { return e.at }
func (e *roundEndEvent) Priority() int      { return PriorityRound }

func (e *roundEndEvent) Execute(s *Simulator) {
	e.round.settle(s)
}

// settle closes a round that reached its end time. A round with no bids
// must already have been discarded by the watchdog (the grace window is
// validated to be shorter than the duration); reaching settlement still
// Open with zero bids means the watchdog never fired, which is a defect,
// not a reachable outcome.
func (r *Round) settle(s *Simulator) {
	if r.Terminal() {
		// Watchdog discarded the round earlier; nothing left to do.
		return
	}
	if r.BidCount == 0 {
		logrus.Panicf("round %d reached end time with no bids and no terminal status", r.ID)
	}
	r.finalize(s, RoundSold)
}

// discard forces the round into Discarded with no winner. Idempotent
// against settlement and repeated watchdog fires.
func (r *Round) discard(s *Simulator) {
	if r.Terminal() {
		return
	}
	r.Winner = StrategyNone
	r.finalize(s, RoundDiscarded)
}

// finalize performs the single terminal transition: records the outcome
// exactly once, terminates every live bidder so nothing mutates price
// after this point, and hands control back to the orchestrator.
func (r *Round) finalize(s *Simulator, status RoundStatus) {
	r.Status = status
	for _, b := range r.bidders {
		b.terminate(s, "round closed")
	}
	s.Metrics.RecordRound(r)
	s.Trace.RecordRound(trace.RoundRecord{
		RoundID:       r.ID,
		Status:        status.String(),
		Winner:        r.Winner.String(),
		StartingPrice: r.StartingPrice,
		FinalPrice:    r.CurrentPrice,
		Bids:          r.BidCount,
	})
	logrus.Infof("round %d %s at t=%.2f: winner=%s, final price=%.2f, bids=%d",
		r.ID, status, s.Clock, r.Winner, r.CurrentPrice, r.BidCount)

	s.Orchestrator.roundFinished(s, r)
}
