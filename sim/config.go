package sim

import (
	"fmt"
	"math"
)

// RoundConfig groups per-round timing and pricing parameters.
type RoundConfig struct {
	Duration          float64 // round length in time units (must be > 0)
	Cooldown          float64 // market pause between rounds (>= 0)
	GraceTimeout      float64 // first-bid watchdog deadline (0 < grace < duration)
	ItemValueMean     float64 // mean of the exponential latent item value
	ValueNoiseSigma   float64 // stddev of the multiplicative value noise
	IncrementFraction float64 // bid increment as a fraction of current price
	SubmitDelay       float64 // virtual time a granted bid occupies the arbiter
}

// PopulationConfig groups bidder-population generation parameters.
type PopulationConfig struct {
	BidderMean           float64 // Poisson mean of the population size
	AgentShare           float64 // categorical strategy split; shares sum to 1
	RatchetShare         float64
	SniperShare          float64
	ValuationMarkup      float64 // mean of valuation / real value (e.g. 1.2)
	ValuationSigma       float64 // valuation spread for agents and ratchets
	SniperValuationSigma float64 // tighter valuation spread for snipers
	UnboundedShare       float64 // probability a ratchet has unbounded valuation
	ArrivalSpread        float64 // fraction of the round over which arrivals trickle in
}

// StrategyConfig groups the timing and patience model shared by the
// bidder strategies.
type StrategyConfig struct {
	MinPollInterval      float64 // floor on the agent/ratchet poll interval
	PatienceDropK        float64 // k in the final-quarter decay curve
	PatienceNoiseMean    float64 // mean of the pre-0.75 exponential decay noise
	AbandonThresholdMean float64 // mean of the exponential abandonment threshold
	AgentQuietFraction   float64 // agent quiet period mean, as a fraction of duration
	RatchetQuietFraction float64 // ratchet quiet period mean, as a fraction of duration
	SnipeLeadMean        float64 // mean lead time of the snipe before round end
	ConfidenceBoost      float64 // patience added after a successful bid (0 disables)
}

// Config is the complete simulation configuration.
type Config struct {
	Items int   // number of auction rounds to run
	Seed  int64 // master seed for the partitioned RNG

	Round      RoundConfig
	Population PopulationConfig
	Strategy   StrategyConfig
}

// DefaultConfig returns the built-in defaults. The strategy split matches
// the reference empirical study (40% agent / 25% ratchet / 35% sniper).
func DefaultConfig() Config {
	return Config{
		Items: 100,
		Seed:  42,
		Round: RoundConfig{
			Duration:          60.0,
			Cooldown:          5.0,
			GraceTimeout:      30.0,
			ItemValueMean:     1000.0,
			ValueNoiseSigma:   0.15,
			IncrementFraction: 0.02,
			SubmitDelay:       0.05,
		},
		Population: PopulationConfig{
			BidderMean:           20.0,
			AgentShare:           0.40,
			RatchetShare:         0.25,
			SniperShare:          0.35,
			ValuationMarkup:      1.2,
			ValuationSigma:       0.25,
			SniperValuationSigma: 0.1,
			UnboundedShare:       0.03,
			ArrivalSpread:        0.5,
		},
		Strategy: StrategyConfig{
			MinPollInterval:      0.2,
			PatienceDropK:        0.97,
			PatienceNoiseMean:    0.005,
			AbandonThresholdMean: 0.05,
			AgentQuietFraction:   0.75,
			RatchetQuietFraction: 0.25,
			SnipeLeadMean:        0.3,
			ConfidenceBoost:      0.0,
		},
	}
}

// Validate checks the configuration before a simulation starts.
// Every violation aborts the run; there is no partial fallback.
func (c *Config) Validate() error {
	if c.Items <= 0 {
		return fmt.Errorf("items must be positive, got %d", c.Items)
	}
	r := c.Round
	if r.Duration <= 0 {
		return fmt.Errorf("round duration must be positive, got %v", r.Duration)
	}
	if r.Cooldown < 0 {
		return fmt.Errorf("cooldown must be non-negative, got %v", r.Cooldown)
	}
	if r.GraceTimeout <= 0 || r.GraceTimeout >= r.Duration {
		// The watchdog must be able to fire strictly before settlement,
		// otherwise a zero-bid round reaches its end time still Open.
		return fmt.Errorf("grace timeout must lie in (0, duration), got %v with duration %v",
			r.GraceTimeout, r.Duration)
	}
	if r.ItemValueMean <= 0 {
		return fmt.Errorf("item value mean must be positive, got %v", r.ItemValueMean)
	}
	if r.IncrementFraction <= 0 || r.IncrementFraction > 0.5 {
		return fmt.Errorf("increment fraction must lie in (0, 0.5], got %v", r.IncrementFraction)
	}
	if r.SubmitDelay < 0 || r.SubmitDelay >= r.GraceTimeout {
		return fmt.Errorf("submit delay must lie in [0, grace timeout), got %v", r.SubmitDelay)
	}

	p := c.Population
	if p.BidderMean < 0 {
		return fmt.Errorf("bidder mean must be non-negative, got %v", p.BidderMean)
	}
	for name, share := range map[string]float64{
		"agent share":   p.AgentShare,
		"ratchet share": p.RatchetShare,
		"sniper share":  p.SniperShare,
	} {
		if share < 0 || share > 1 {
			return fmt.Errorf("%s must lie in [0, 1], got %v", name, share)
		}
	}
	if sum := p.AgentShare + p.RatchetShare + p.SniperShare; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("strategy shares must sum to 1, got %v", sum)
	}
	if p.ValuationMarkup <= 0 {
		return fmt.Errorf("valuation markup must be positive, got %v", p.ValuationMarkup)
	}
	if p.UnboundedShare < 0 || p.UnboundedShare > 1 {
		return fmt.Errorf("unbounded share must lie in [0, 1], got %v", p.UnboundedShare)
	}
	if p.ArrivalSpread <= 0 || p.ArrivalSpread > 1 {
		return fmt.Errorf("arrival spread must lie in (0, 1], got %v", p.ArrivalSpread)
	}

	s := c.Strategy
	if s.MinPollInterval <= 0 {
		return fmt.Errorf("min poll interval must be positive, got %v", s.MinPollInterval)
	}
	if s.PatienceDropK <= 0 || s.PatienceDropK > 1 {
		return fmt.Errorf("patience drop k must lie in (0, 1], got %v", s.PatienceDropK)
	}
	if s.AbandonThresholdMean <= 0 {
		return fmt.Errorf("abandon threshold mean must be positive, got %v", s.AbandonThresholdMean)
	}
	if s.ConfidenceBoost < 0 || s.ConfidenceBoost > 1 {
		return fmt.Errorf("confidence boost must lie in [0, 1], got %v", s.ConfidenceBoost)
	}
	return nil
}
