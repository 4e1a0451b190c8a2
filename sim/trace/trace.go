package trace

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// AuctionTrace collects bid and round records during a simulation run.
// Records are append-only; each round contributes exactly one RoundRecord.
type AuctionTrace struct {
	RunID  string
	Bids   []BidRecord
	Rounds []RoundRecord
}

// NewAuctionTrace creates an AuctionTrace stamped with a fresh run id.
func NewAuctionTrace() *AuctionTrace {
	return &AuctionTrace{
		RunID:  uuid.NewString(),
		Bids:   make([]BidRecord, 0),
		Rounds: make([]RoundRecord, 0),
	}
}

// RecordBid appends an accepted-bid record.
func (t *AuctionTrace) RecordBid(record BidRecord) {
	t.Bids = append(t.Bids, record)
}

// RecordRound appends a round outcome record.
func (t *AuctionTrace) RecordRound(record RoundRecord) {
	t.Rounds = append(t.Rounds, record)
}

// WriteBidLog writes the bid log as CSV: one row per accepted bid with
// (round, elapsed, price, strategy), preceded by a header naming the run.
func (t *AuctionTrace) WriteBidLog(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"round", "elapsed", "price", "strategy"}); err != nil {
		return fmt.Errorf("write bid log header: %w", err)
	}
	for _, b := range t.Bids {
		row := []string{
			fmt.Sprintf("%d", b.RoundID),
			fmt.Sprintf("%.4f", b.Elapsed),
			fmt.Sprintf("%.4f", b.Price),
			b.Strategy,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write bid log row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
