// Tracks simulation-wide outcome tallies for final reporting.

package sim

import "fmt"

// Metrics aggregates per-run statistics: the win tally per strategy
// (including discarded rounds as "none"), bid volume, and arbiter
// contention counters useful when debugging timing parameters.
type Metrics struct {
	RoundsCompleted int
	RoundsSold      int
	RoundsDiscarded int
	Wins            map[Strategy]int

	TotalBids     int
	ArbiterHolds  int
	StaleAbandons int

	SalePriceSum float64
}

// NewMetrics creates an empty metrics sink.
func NewMetrics() *Metrics {
	return &Metrics{Wins: make(map[Strategy]int)}
}

// RecordRound tallies one completed round. Called exactly once per round,
// from its terminal transition.
func (m *Metrics) RecordRound(r *Round) {
	m.RoundsCompleted++
	m.Wins[r.Winner]++
	if r.Status == RoundSold {
		m.RoundsSold++
		m.SalePriceSum += r.CurrentPrice
	} else {
		m.RoundsDiscarded++
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Rounds completed     : %d\n", m.RoundsCompleted)
	fmt.Printf("Rounds sold          : %d\n", m.RoundsSold)
	fmt.Printf("Rounds discarded     : %d\n", m.RoundsDiscarded)
	for _, strategy := range []Strategy{StrategyAgent, StrategyRatchet, StrategySniper, StrategyNone} {
		fmt.Printf("Wins [%-7s]       : %d\n", strategy, m.Wins[strategy])
	}
	fmt.Printf("Accepted bids        : %d\n", m.TotalBids)
	fmt.Printf("Arbiter holds        : %d\n", m.ArbiterHolds)
	fmt.Printf("Stale bids abandoned : %d\n", m.StaleAbandons)
	if m.RoundsSold > 0 {
		fmt.Printf("Average sale price   : %.2f\n", m.SalePriceSum/float64(m.RoundsSold))
	}
}
