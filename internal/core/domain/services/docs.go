// Package services provides domain services that coordinate several
// aggregates of the bidding marketplace.
//
// The package includes:
//   - Selection: the single command object that accepts a carrier quote,
//     closing the order, selecting the quote and expiring its siblings
package services
