// Package order provides the Order aggregate of the bidding marketplace:
// a shipment request created by a shipper and closed either administratively
// or by accepting exactly one carrier quote.
//
// The package includes:
//   - ID: the human-readable order identifier, RX + YYMMDD + "-" + 001..999
//   - Status: the lifecycle state machine (Active -> Closed | Cancelled)
//   - Order: the aggregate root
//   - Selection: the winning quote data stored on a closed order
//
// Key business rules:
//   - Required details (warehouse, goods, delivery address) are never blank
//   - Details may only change while the order is Active
//   - Closed and Cancelled are terminal
//   - Selection fields are set together, exactly once, only when closing by selection
package order
