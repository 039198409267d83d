package quote

import (
	"fmt"

	"bidding/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Active
	Selected
	Expired
)

var statusNames = map[Status]string{
	Active:   "Active",
	Selected: "Selected",
	Expired:  "Expired",
}

var transitions = map[Status][]Status{
	Active:   {Selected, Expired},
	Selected: {},
	Expired:  {},
}

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

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
