// Package quote provides the Quote aggregate: a carrier's price offer on an
// order. There is at most one quote per (order, carrier) pair; resubmitting
// revises the existing quote in place.
//
// Lifecycle:
//
//	Active ──┬──> Selected  (the shipper accepted it)
//	         └──> Expired   (a sibling was accepted or the order was withdrawn)
package quote
