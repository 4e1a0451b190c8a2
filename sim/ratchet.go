package sim

// newRatchetPolicy samples the ratchet's quiet period. Ratchets share the
// agent's poll/patience shape but become bid-eligible much earlier, which
// is what produces their characteristic incremental price-pushing through
// the middle of the round. The small chance of an unbounded valuation
// (the irrational participant who never stops) is assigned by the
// population generator, not here, since valuation is creation-time state.
func newRatchetPolicy(s *Simulator, r *Round) bidPolicy {
	quiet := sampleExp(s.RNG.ForSubsystem(SubsystemBidders),
		s.Config.Strategy.RatchetQuietFraction*(r.EndTime-r.StartTime))
	return &pollingPolicy{activeAt: r.StartTime + quiet}
}
