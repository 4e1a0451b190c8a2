package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// populationGenerator spawns one round's bidder population, staggered by
// exponential inter-arrival gaps so bidders trickle in rather than
// appearing at once. Spawning stops early if the round goes terminal.
type populationGenerator struct {
	round     *Round
	remaining int
	spawned   int
	meanGap   float64
}

// startPopulationGenerator samples the population size for the round and
// schedules the first arrival. A zero sample spawns nothing at all; the
// watchdog is then the only way the round concludes.
func startPopulationGenerator(s *Simulator, r *Round) {
	rng := s.RNG.ForSubsystem(SubsystemPopulation)
	cfg := s.Config.Population

	size := samplePoisson(rng, cfg.BidderMean)
	if size == 0 {
		logrus.Infof("round %d: population sample is zero, no bidders will arrive", r.ID)
		return
	}

	g := &populationGenerator{
		round:     r,
		remaining: size,
		meanGap:   (r.EndTime - r.StartTime) * cfg.ArrivalSpread / float64(size),
	}
	s.Schedule(&spawnBidderEvent{at: s.Clock + sampleExp(rng, g.meanGap), gen: g})
}

// spawnBidderEvent creates one bidder and chains the next arrival.
type spawnBidderEvent struct {
	at  float64
	gen *populationGenerator
}

func (e *spawnBidderEvent) Timestamp() float64 { return e.at }
func (e *spawnBidderEvent) Priority() int      { return PriorityBidder }

func (e *spawnBidderEvent) Execute(s *Simulator) {
	g := e.gen
	if g.round.Terminal() {
		return
	}
	g.spawnOne(s)
	g.remaining--
	if g.remaining > 0 {
		rng := s.RNG.ForSubsystem(SubsystemPopulation)
		s.Schedule(&spawnBidderEvent{at: s.Clock + sampleExp(rng, g.meanGap), gen: g})
	}
}

// spawnOne assigns a strategy by the configured categorical split,
// samples a private valuation around the item's real value, and hands the
// new bidder its first wake-up. After spawn the bidder needs no further
// synchronization with the generator.
func (g *populationGenerator) spawnOne(s *Simulator) {
	rng := s.RNG.ForSubsystem(SubsystemPopulation)
	cfg := s.Config.Population
	r := g.round

	var strategy Strategy
	var policy bidPolicy
	var valuation float64

	switch u := rng.Float64(); {
	case u < cfg.AgentShare:
		strategy = StrategyAgent
		policy = newAgentPolicy(s, r)
		valuation = r.RealValue * sampleNormal(rng, cfg.ValuationMarkup, cfg.ValuationSigma)
	case u < cfg.AgentShare+cfg.RatchetShare:
		strategy = StrategyRatchet
		policy = newRatchetPolicy(s, r)
		if rng.Float64() < cfg.UnboundedShare {
			// The irrational participant: no ceiling, never stops on price.
			valuation = math.Inf(1)
		} else {
			valuation = r.RealValue * sampleNormal(rng, cfg.ValuationMarkup, cfg.ValuationSigma)
		}
	default:
		strategy = StrategySniper
		policy = newSniperPolicy(s, r)
		valuation = r.RealValue * sampleNormal(rng, cfg.ValuationMarkup, cfg.SniperValuationSigma)
	}
	valuation = math.Max(valuation, 0)

	g.spawned++
	b := &Bidder{
		ID:        fmt.Sprintf("r%d-b%d", r.ID, g.spawned),
		Strategy:  strategy,
		Valuation: valuation,
		Patience:  initialPatience,
		round:     r,
		policy:    policy,
		state:     BidderDeciding,
		abandonThreshold: math.Min(1,
			sampleExp(s.RNG.ForSubsystem(SubsystemBidders), s.Config.Strategy.AbandonThresholdMean)),
		lastPatienceAt: s.Clock,
	}
	r.attach(b)
	s.Schedule(&bidderWakeEvent{at: b.policy.firstWake(s, b), bidder: b})

	logrus.Debugf("round %d: spawned %s (%s) at t=%.2f, valuation=%.2f",
		r.ID, b.ID, b.Strategy, s.Clock, b.Valuation)
}
