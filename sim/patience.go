package sim

import "math"

// initialPatience is where every agent and ratchet bidder starts. It
// matches the value of the final-quarter curve at its left edge, so the
// two decay regimes join without a jump.
const initialPatience = 0.99

// patienceCurveStart is the normalized round time at which decay switches
// from small exponential noise to the polynomial drop-off.
const patienceCurveStart = 0.75

// patienceRecomputeDivisor throttles patience recomputation to once per
// duration/100 to avoid oversampling on tight poll loops.
const patienceRecomputeDivisor = 100.0

// updatePatience recomputes the bidder's patience for the current clock.
// Patience only ever moves forward in time: before three-quarters of the
// round it loses a small exponential-noise term per recomputation; past
// that point it follows 0.99 − k·((nt−0.75)/0.25)^5, a slow-then-fast
// drop-off that concentrates abandonment in the final quarter. The curve
// is applied through min() so an earlier noisy value is never raised.
func (b *Bidder) updatePatience(s *Simulator) {
	r := b.round
	duration := r.EndTime - r.StartTime
	if s.Clock-b.lastPatienceAt < duration/patienceRecomputeDivisor {
		return
	}
	b.lastPatienceAt = s.Clock

	cfg := s.Config.Strategy
	nt := (s.Clock - r.StartTime) / duration
	if nt < patienceCurveStart {
		b.Patience -= sampleExp(s.RNG.ForSubsystem(SubsystemBidders), cfg.PatienceNoiseMean)
	} else {
		x := (nt - patienceCurveStart) / (1 - patienceCurveStart)
		b.Patience = math.Min(b.Patience, initialPatience-cfg.PatienceDropK*math.Pow(x, 5))
	}
	if b.Patience < 0 {
		b.Patience = 0
	}
}
