// Package sim implements a discrete-event simulation of sequential
// fixed-duration ascending-price auctions.
//
// Each auction round is contested by a stochastic population of bidder
// processes following one of three strategies (agent, ratchet, sniper).
// Bidders contend for a single exclusive arbiter that serializes price
// increments; a watchdog discards rounds that attract no early interest.
// The engine is a cooperative virtual-time event loop: all concurrency is
// suspended processes sharing one logical clock, resumed in deterministic
// (timestamp, priority, sequence) order, so runs with equal seeds and
// configuration are bit-for-bit reproducible.
package sim
