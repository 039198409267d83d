// Package kernel provides the value objects shared by the order and quote
// aggregates.
//
// The package includes:
//   - UUID: identifier of quotes, owners and providers
//   - Price: a non-negative monetary amount backed by shopspring/decimal
//
// Both types are immutable and have an invalid zero value; they must be
// created through their constructors and checked with Validate when they
// arrive from outside the domain.
package kernel
