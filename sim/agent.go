package sim

import "math"

// pollingPolicy is the shared shape of the agent and ratchet strategies:
// a poll loop whose interval tracks current patience (floored at the
// configured minimum), an exponentially-sampled quiet period during which
// the bidder observes without bidding, and a uniform draw per tick that
// triggers a bid attempt once it exceeds patience.
//
// Agents and ratchets differ only in how early the quiet period tends to
// end (and, for ratchets, in the possibility of an unbounded valuation,
// which is assigned at population-generation time).
type pollingPolicy struct {
	// activeAt is the absolute time this bidder becomes bid-eligible.
	activeAt float64
}

func (p *pollingPolicy) firstWake(s *Simulator, b *Bidder) float64 {
	return s.Clock + p.pollInterval(s, b)
}

func (p *pollingPolicy) decide(s *Simulator, b *Bidder) decision {
	b.updatePatience(s)
	if b.Patience < b.abandonThreshold {
		return decision{terminate: true, reason: "patience exhausted"}
	}
	if !b.bidFits(s) {
		return decision{terminate: true, reason: "valuation unreachable"}
	}
	// The current leader has nothing to gain from raising its own bid.
	if !b.Leading && s.Clock >= p.activeAt {
		u := s.RNG.ForSubsystem(SubsystemBidders).Float64()
		if u > b.Patience {
			return decision{attempt: true}
		}
	}
	return decision{wakeAfter: p.pollInterval(s, b)}
}

func (p *pollingPolicy) afterAttempt(s *Simulator, b *Bidder, placed bool) decision {
	if placed && s.Config.Strategy.ConfidenceBoost > 0 {
		b.Patience = math.Min(1, b.Patience+s.Config.Strategy.ConfidenceBoost)
	}
	return decision{wakeAfter: p.pollInterval(s, b)}
}

// pollInterval tracks patience so impatient bidders poll faster, floored
// near 0.2 time units.
func (p *pollingPolicy) pollInterval(s *Simulator, b *Bidder) float64 {
	return math.Max(s.Config.Strategy.MinPollInterval, b.Patience)
}

// newAgentPolicy samples the agent's early quiet period: exponentially
// distributed with a mean around three-quarters of the round, so most
// agents only become willing to bid late in the auction.
func newAgentPolicy(s *Simulator, r *Round) bidPolicy {
	quiet := sampleExp(s.RNG.ForSubsystem(SubsystemBidders),
		s.Config.Strategy.AgentQuietFraction*(r.EndTime-r.StartTime))
	return &pollingPolicy{activeAt: r.StartTime + quiet}
}
