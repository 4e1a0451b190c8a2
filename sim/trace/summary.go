package trace

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics from an AuctionTrace.
type Summary struct {
	RunID           string
	Rounds          int
	Sold            int
	Discarded       int
	WinsByStrategy  map[string]int // strategy → rounds won; "none" counts discards
	TotalBids       int
	MeanBidsPerSold float64
	MeanSalePrice   float64
	StdDevSalePrice float64
}

// Summarize computes aggregate statistics from an AuctionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *AuctionTrace) *Summary {
	summary := &Summary{
		WinsByStrategy: make(map[string]int),
	}
	if t == nil {
		return summary
	}
	summary.RunID = t.RunID
	summary.Rounds = len(t.Rounds)
	summary.TotalBids = len(t.Bids)

	salePrices := make([]float64, 0, len(t.Rounds))
	soldBids := 0
	for _, r := range t.Rounds {
		summary.WinsByStrategy[r.Winner]++
		if r.Status == "sold" {
			summary.Sold++
			salePrices = append(salePrices, r.FinalPrice)
			soldBids += r.Bids
		} else {
			summary.Discarded++
		}
	}

	if summary.Sold > 0 {
		summary.MeanBidsPerSold = float64(soldBids) / float64(summary.Sold)
		summary.MeanSalePrice = stat.Mean(salePrices, nil)
		if summary.Sold > 1 {
			summary.StdDevSalePrice = stat.StdDev(salePrices, nil)
		}
	}
	return summary
}

// Write prints the end-of-run summary in a stable order.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "=== Auction Summary (run %s) ===\n", s.RunID)
	fmt.Fprintf(w, "Rounds               : %d (%d sold, %d discarded)\n", s.Rounds, s.Sold, s.Discarded)
	fmt.Fprintf(w, "Total accepted bids  : %d\n", s.TotalBids)

	strategies := make([]string, 0, len(s.WinsByStrategy))
	for name := range s.WinsByStrategy {
		strategies = append(strategies, name)
	}
	sort.Strings(strategies)
	for _, name := range strategies {
		fmt.Fprintf(w, "Wins [%-7s]       : %d\n", name, s.WinsByStrategy[name])
	}

	if s.Sold > 0 {
		fmt.Fprintf(w, "Mean bids per sale   : %.2f\n", s.MeanBidsPerSold)
		fmt.Fprintf(w, "Sale price mean      : %.2f\n", s.MeanSalePrice)
		fmt.Fprintf(w, "Sale price stddev    : %.2f\n", s.StdDevSalePrice)
	}
}
