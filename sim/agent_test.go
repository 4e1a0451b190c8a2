package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollingPolicy_QuietPeriodBlocksEarlyBids(t *testing.T) {
	// GIVEN an agent still inside its quiet period
	s := newTestSimulator(t, DefaultConfig())
	r := newOpenTestRound(s, 1, 100)
	policy := &pollingPolicy{activeAt: 45}
	b := newTestBidder(r, "b1", StrategyAgent, 500, policy)
	b.Patience = 0 // would otherwise bid on every tick

	// WHEN deciding before the quiet period ends
	s.Clock = 10
	d := policy.decide(s, b)

	// THEN the bidder keeps polling instead of attempting
	assert.False(t, d.attempt)
	assert.False(t, d.terminate)
	assert.Greater(t, d.wakeAfter, 0.0)
}

func TestPollingPolicy_LeaderDoesNotRaiseItsOwnBid(t *testing.T) {
	// GIVEN an active, fully impatient bidder that currently leads
	s := newTestSimulator(t, DefaultConfig())
	r := newOpenTestRound(s, 1, 100)
	policy := &pollingPolicy{activeAt: 0}
	b := newTestBidder(r, "b1", StrategyAgent, 500, policy)
	b.Patience = 0
	b.Leading = true

	// WHEN it decides
	s.Clock = 10
	d := policy.decide(s, b)

	// THEN it holds its position rather than bidding against itself
	assert.False(t, d.attempt)
	assert.False(t, d.terminate)
}

func TestPollingPolicy_TerminatesWhenIncrementNoLongerFits(t *testing.T) {
	// GIVEN a price one increment below the bidder's valuation boundary
	s := newTestSimulator(t, DefaultConfig())
	r := newOpenTestRound(s, 1, 100)
	policy := &pollingPolicy{activeAt: 0}
	b := newTestBidder(r, "b1", StrategyAgent, 101, policy) // 100 + 2% = 102 > 101

	s.Clock = 10
	d := policy.decide(s, b)

	assert.True(t, d.terminate)
	assert.Equal(t, "valuation unreachable", d.reason)
}

func TestPollingPolicy_TerminatesOnExhaustedPatience(t *testing.T) {
	// GIVEN patience already below the abandonment threshold
	s := newTestSimulator(t, DefaultConfig())
	r := newOpenTestRound(s, 1, 100)
	policy := &pollingPolicy{activeAt: 0}
	b := newTestBidder(r, "b1", StrategyAgent, 500, policy)
	b.Patience = 0.01
	b.abandonThreshold = 0.5
	b.lastPatienceAt = 10 // keep the throttle from recomputing first

	s.Clock = 10
	d := policy.decide(s, b)

	assert.True(t, d.terminate)
	assert.Equal(t, "patience exhausted", d.reason)
}

func TestPollingPolicy_ConfidenceBoostRaisesPatienceAfterPlacedBid(t *testing.T) {
	// GIVEN the boost policy enabled
	cfg := DefaultConfig()
	cfg.Strategy.ConfidenceBoost = 0.2
	s := newTestSimulator(t, cfg)
	r := newOpenTestRound(s, 1, 100)
	policy := &pollingPolicy{activeAt: 0}
	b := newTestBidder(r, "b1", StrategyAgent, 500, policy)
	b.Patience = 0.5

	// WHEN a bid is placed vs rejected
	policy.afterAttempt(s, b, true)
	assert.InDelta(t, 0.7, b.Patience, 1e-9)

	policy.afterAttempt(s, b, false)
	assert.InDelta(t, 0.7, b.Patience, 1e-9) // rejection grants nothing

	// THEN the boost clamps at 1
	b.Patience = 0.95
	policy.afterAttempt(s, b, true)
	assert.InDelta(t, 1.0, b.Patience, 1e-9)
}

func TestSniperPolicy_OneShotOnly(t *testing.T) {
	// GIVEN a sniper whose attempt just resolved, either way
	s := newTestSimulator(t, DefaultConfig())
	r := newOpenTestRound(s, 1, 100)
	policy := &sniperPolicy{snipeAt: 59}
	b := newTestBidder(r, "b1", StrategySniper, 500, policy)

	// THEN it terminates after success and after failure alike
	assert.True(t, policy.afterAttempt(s, b, true).terminate)
	assert.True(t, policy.afterAttempt(s, b, false).terminate)
}

func TestSniperPolicy_LateSpawnFiresImmediately(t *testing.T) {
	// GIVEN a sniper spawned after its target snipe time
	s := newTestSimulator(t, DefaultConfig())
	s.Clock = 59.9
	policy := &sniperPolicy{snipeAt: 59.5}

	// THEN the first wake is clamped to the spawn instant
	r := newOpenTestRound(s, 1, 100)
	b := newTestBidder(r, "b1", StrategySniper, 500, policy)
	assert.Equal(t, 59.9, policy.firstWake(s, b))
}
