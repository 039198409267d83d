package order

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"bidding/internal/pkg/errs"
)

const (
	idPrefix = "RX"

	// MaxSequence is the last sequence number issued for a single day.
	MaxSequence = 999

	idDateLayout  = "060102"
	dayKeyLayout  = "20060102"
	sequenceWidth = 3
)

var idPattern = regexp.MustCompile(`^RX(\d{6})-(\d{3})$`)

// ID is the persisted order identifier, e.g. RX250526-001. The format is part
// of the compatibility surface and must stay bit-exact.
type ID struct {
	value string
}

// NewID formats the identifier for the sequence-th order of day.
// sequence must be within [1, MaxSequence].
func NewID(day time.Time, sequence int) (ID, error) {
	if sequence < 1 || sequence > MaxSequence {
		return ID{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, MaxSequence)
	}
	return ID{value: fmt.Sprintf("%s%s-%0*d", idPrefix, day.Format(idDateLayout), sequenceWidth, sequence)}, nil
}

// ParseID validates s against the identifier format, including the calendar
// date and a non-zero sequence.
func ParseID(s string) (ID, error) {
	m := idPattern.FindStringSubmatch(s)
	if m == nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q does not match RXYYMMDD-NNN", s))
	}
	if _, err := time.Parse(idDateLayout, m[1]); err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q has no valid date: %w", s, err))
	}
	seq, _ := strconv.Atoi(m[2])
	if seq < 1 {
		return ID{}, errs.NewValueIsOutOfRangeError("sequence", seq, 1, MaxSequence)
	}
	return ID{value: s}, nil
}

// MustParseID is ParseID for tests and constants. It panics on invalid input.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// DayKey is the key of the daily sequence counter for day: YYYYMMDD.
func DayKey(day time.Time) string {
	return day.Format(dayKeyLayout)
}

func (id ID) String() string {
	return id.value
}

// Sequence returns the numeric suffix.
func (id ID) Sequence() int {
	if len(id.value) < sequenceWidth {
		return 0
	}
	seq, _ := strconv.Atoi(id.value[len(id.value)-sequenceWidth:])
	return seq
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

func (id ID) Validate() error {
	if id.value == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}
