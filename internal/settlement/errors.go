package settlement

import (
	"errors"
	"fmt"
)

// ErrCannotCompute is matched by every CannotComputeError via errors.Is.
var ErrCannotCompute = errors.New("cannot compute profit/loss")

// Reason classifies why a profit/loss could not be derived.
type Reason string

const (
	ReasonInvalidStake    Reason = "invalid_stake"
	ReasonInvalidOdds     Reason = "invalid_odds"
	ReasonInvalidPosition Reason = "invalid_position"
	ReasonNotSettled      Reason = "not_settled"
	ReasonMissingPayout   Reason = "missing_payout"
	ReasonInvalidPayout   Reason = "invalid_payout"
	ReasonUnsupportedType Reason = "unsupported_type"
)

// CannotComputeError reports insufficient or invalid settlement input.
// Callers surface it to the user as a request for more information.
type CannotComputeError struct {
	Reason Reason
	Detail string
}

func (e *CannotComputeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrCannotCompute, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCannotCompute, e.Reason, e.Detail)
}

// Is makes errors.Is(err, ErrCannotCompute) hold.
func (e *CannotComputeError) Is(target error) bool {
	return target == ErrCannotCompute
}

func cannotCompute(reason Reason, format string, args ...any) error {
	return &CannotComputeError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the Reason from err, or "" when err is not a CannotComputeError.
func ReasonOf(err error) Reason {
	var cce *CannotComputeError
	if errors.As(err, &cce) {
		return cce.Reason
	}
	return ""
}
