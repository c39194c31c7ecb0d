// Package models defines the core domain models for the squares pool.
//
// # Models
//
//   - Group: one configured pool instance (grid, price, payouts, squares,
//     number assignments, quarter results). The central aggregate; every
//     lifecycle operation reads a Group, mutates a copy, and writes the whole
//     record back.
//   - Square: one grid cell, purchasable, optionally owned by a wallet address.
//   - NumberAssignment: a pair of digit permutations mapping grid rows and
//     columns to score digits.
//   - QuarterResult: a recorded score for one quarter, resolved to a winning
//     square and a prize amount.
//   - GameScore: a live score snapshot from the external feed.
//
// # Design principles
//
//  1. Wallet addresses are opaque strings. The engine never verifies wallet
//     ownership; callers are trusted to have authenticated the address.
//  2. Timestamps are Unix seconds (int64); zero means "not yet".
//  3. Absence is modeled explicitly only where it matters: unassigned number
//     slots are nil pointers and an unresolvable winning square is a nil
//     index. An unowned square is simply an empty Owner string.
package models
