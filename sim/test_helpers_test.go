package sim

import "testing"

// newTestSimulator builds a simulator with the given config, failing the
// test on validation errors.
func newTestSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// newOpenTestRound constructs an already-open round with a fixed price,
// bypassing the market sampling, so tests control every number.
func newOpenTestRound(s *Simulator, id int, price float64) *Round {
	r := &Round{
		ID:            id,
		StartTime:     s.Clock,
		EndTime:       s.Clock + s.Config.Round.Duration,
		RealValue:     price / 0.8,
		StartingPrice: price,
		CurrentPrice:  price,
		Status:        RoundOpen,
		Winner:        StrategyNone,
		FirstBidAt:    -1,
		bidders:       make([]*Bidder, 0),
	}
	return r
}

// newTestBidder constructs a live bidder attached to the round. A zero
// abandonThreshold means patience can never fall below it, so the bidder
// only leaves on valuation or round-end grounds.
func newTestBidder(r *Round, id string, strategy Strategy, valuation float64, policy bidPolicy) *Bidder {
	b := &Bidder{
		ID:        id,
		Strategy:  strategy,
		Valuation: valuation,
		Patience:  initialPatience,
		round:     r,
		policy:    policy,
		state:     BidderDeciding,
	}
	r.attach(b)
	return b
}
