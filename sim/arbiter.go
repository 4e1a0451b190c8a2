package sim

import (
	"github.com/sirupsen/logrus"
)

// BiddingArbiter is the single exclusive resource that serializes bid
// submissions. At most one bidder holds it at any instant; contention is
// resolved by FIFO queuing, never by rejection. The arbiter persists
// across rounds and carries no state between holds.
//
// A hold spans the configured submit delay between grant and commit, so
// bidders deciding meanwhile queue up and, on release, re-validate
// against the price the previous holder left behind — the queue drain is
// the wake-on-release re-evaluation.
type BiddingArbiter struct {
	held    bool
	holder  *Bidder
	waiters []*Bidder
}

// NewBiddingArbiter creates a free arbiter.
func NewBiddingArbiter() *BiddingArbiter {
	return &BiddingArbiter{waiters: make([]*Bidder, 0)}
}

// Held reports whether a bidder currently holds the arbiter.
func (a *BiddingArbiter) Held() bool { return a.held }

// Holder returns the current holder, or nil when free.
func (a *BiddingArbiter) Holder() *Bidder { return a.holder }

// QueueLen returns the number of bidders waiting for the arbiter.
func (a *BiddingArbiter) QueueLen() int { return len(a.waiters) }

// Request is the entry point for a bidder that decided to bid. Grants
// immediately when free, otherwise queues the bidder behind the holder.
func (a *BiddingArbiter) Request(s *Simulator, b *Bidder) {
	if a.held {
		a.waiters = append(a.waiters, b)
		logrus.Debugf("bidder %s queued for arbiter behind %s (%d waiting)",
			b.ID, a.holder.ID, len(a.waiters))
		return
	}
	a.grant(s, b)
}

// grant enters the critical section for b. The validity check runs here,
// after acquisition, never before: the price may have moved while the
// bidder was queued, and a stale decision is silently abandoned.
func (a *BiddingArbiter) grant(s *Simulator, b *Bidder) {
	if a.held {
		logrus.Panicf("arbiter granted to %s while held by %s", b.ID, a.holder.ID)
	}
	a.held = true
	a.holder = b
	b.state = BidderHolding
	s.Metrics.ArbiterHolds++

	if b.round.Terminal() || !b.bidFits(s) {
		s.Metrics.StaleAbandons++
		logrus.Debugf("bidder %s abandoned stale bid at price %.2f", b.ID, b.round.CurrentPrice)
		a.release(s)
		b.bidResolved(s, false)
		return
	}
	s.Schedule(&bidCommitEvent{at: s.Clock + s.Config.Round.SubmitDelay, bidder: b})
}

// release frees the arbiter and grants the next live waiter, at the same
// timestamp. Terminated waiters are skipped.
func (a *BiddingArbiter) release(s *Simulator) {
	if !a.held {
		logrus.Panicf("release of a free arbiter")
	}
	a.held = false
	a.holder = nil
	for len(a.waiters) > 0 {
		next := a.waiters[0]
		a.waiters = a.waiters[1:]
		if next.state != BidderWaitingArbiter {
			continue
		}
		a.grant(s, next)
		return
	}
}

// bidCommitEvent applies the holder's price increment once the submit
// delay elapses. If the round went terminal mid-hold the bid is abandoned
// cleanly, but the arbiter is still released.
type bidCommitEvent struct {
	at     float64
	bidder *Bidder
}

func (e *bidCommitEvent) Timestamp() float64 { return e.at }
func (e *bidCommitEvent) Priority() int      { return PriorityBidder }

func (e *bidCommitEvent) Execute(s *Simulator) {
	a := s.Arbiter
	b := e.bidder
	if !a.held || a.holder != b {
		logrus.Panicf("bid commit for %s without a matching hold", b.ID)
	}
	r := b.round
	if r.Terminal() {
		a.release(s)
		b.bidResolved(s, false)
		return
	}
	price := r.CurrentPrice
	r.applyBid(s, b, price+price*s.Config.Round.IncrementFraction)
	a.release(s)
	b.bidResolved(s, true)
}
