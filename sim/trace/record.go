// Package trace provides append-only bid and round records for auction
// simulation runs. This package has no dependencies on sim/ — it stores
// pure data types plus their persistence and summary logic.
package trace

// BidRecord captures one accepted price increment.
type BidRecord struct {
	RoundID  int
	Elapsed  float64 // time since round start
	Price    float64 // price after the increment
	Strategy string  // strategy of the accepted bidder
}

// RoundRecord captures the outcome of one completed round.
type RoundRecord struct {
	RoundID       int
	Status        string // "sold" or "discarded"
	Winner        string // winning strategy, or "none"
	StartingPrice float64
	FinalPrice    float64
	Bids          int
}
