package sim

import "math"

// sniperPolicy stays dormant until a target snipe time just before the
// round ends, attempts exactly one bid, and always terminates afterwards,
// successful or not. The lead time models human reaction plus network
// delay; a sniper spawned after its target time fires immediately.
type sniperPolicy struct {
	snipeAt float64
}

func (p *sniperPolicy) firstWake(s *Simulator, b *Bidder) float64 {
	return math.Max(s.Clock, p.snipeAt)
}

func (p *sniperPolicy) decide(s *Simulator, b *Bidder) decision {
	if !b.bidFits(s) {
		return decision{terminate: true, reason: "valuation unreachable"}
	}
	return decision{attempt: true}
}

func (p *sniperPolicy) afterAttempt(s *Simulator, b *Bidder, placed bool) decision {
	// One shot only. No retry on a stale grant either.
	return decision{terminate: true, reason: "snipe spent"}
}

func newSniperPolicy(s *Simulator, r *Round) bidPolicy {
	lead := sampleExp(s.RNG.ForSubsystem(SubsystemBidders), s.Config.Strategy.SnipeLeadMean)
	return &sniperPolicy{snipeAt: r.EndTime - lead}
}
