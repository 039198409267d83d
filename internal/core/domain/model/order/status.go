package order

import (
	"fmt"

	"bidding/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Active ──┬──> Closed     (CloseOrder or SelectQuote)
//	         └──> Cancelled  (CancelOrder)
//
// Closed and Cancelled are terminal. Every transition is checked against
// the table below; there is no way to assign an arbitrary status.
type Status int

const (
	// Unknown catches uninitialized values and is never valid.
	Unknown Status = iota
	Active
	Closed
	Cancelled
)

var statusNames = map[Status]string{
	Active:    "Active",
	Closed:    "Closed",
	Cancelled: "Cancelled",
}

var transitions = map[Status][]Status{
	Active:    {Closed, Cancelled},
	Closed:    {},
	Cancelled: {},
}

// Validate rejects Unknown and any value outside the enum.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) IsActive() bool {
	return s == Active
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the edge s -> next exists, otherwise an
// InvalidStateError naming action.
func (s Status) TransitionTo(next Status, action string) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidStateError("order", "", s.String(), action)
	}
	return next, nil
}
