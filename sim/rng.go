package sim

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RNG subsystem names. Each subsystem draws from its own deterministic
// stream so that, e.g., adding a bidder decision draw never perturbs the
// sequence of item values.
const (
	// SubsystemMarket samples latent item values and starting prices.
	SubsystemMarket = "market"
	// SubsystemPopulation samples population sizes, strategy assignment,
	// valuations and arrival gaps.
	SubsystemPopulation = "population"
	// SubsystemBidders samples patience noise, abandonment thresholds,
	// quiet periods, snipe offsets and decision draws.
	SubsystemBidders = "bidders"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived as masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The event loop is single-threaded.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Variate samplers ===
//
// All auction quantities are sampled through these helpers so the
// distributions live in one place.

// sampleExp draws an exponentially-distributed value with the given mean.
// Always returns a non-negative value.
func sampleExp(rng *rand.Rand, mean float64) float64 {
	if mean <= 0 {
		return 0
	}
	return rng.ExpFloat64() * mean
}

// sampleNormal draws a normally-distributed value with the given mean and
// standard deviation.
func sampleNormal(rng *rand.Rand, mean, stddev float64) float64 {
	return rng.NormFloat64()*stddev + mean
}

// samplePoisson draws a Poisson-distributed count via Knuth's method.
// Adequate for the population sizes used here (lambda well below the
// range where the exp(-lambda) product underflows).
func samplePoisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}
