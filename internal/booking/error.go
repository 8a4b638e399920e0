package booking

import (
	"errors"
)

var (
	// ErrConflict means at least one requested day is held by another reservation.
	ErrConflict = errors.New("the campsite is occupied for the days you have selected")

	// ErrNotFound means no reservation exists with the given group ID.
	ErrNotFound = errors.New("reservation not found")
)

// Rule names the booking rule a request violated.
type Rule string

const (
	RuleAdvanceWindow  Rule = "advance-window"
	RuleMaxLength      Rule = "max-length"
	RuleDatesRequired  Rule = "dates-required"
	RuleLengthMismatch Rule = "length-mismatch"
	RuleOccupant       Rule = "occupant"
)

// ValidationError reports a request rejected by a booking rule.
// Message is safe to show to the caller.
type ValidationError struct {
	Rule    Rule
	Message string
}

func newValidationError(rule Rule, msg string) *ValidationError {
	return &ValidationError{Rule: rule, Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError returns the *ValidationError in err's chain, or nil.
func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError

	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

// isDomainError reports whether err is one of the outcomes the engine
// returns to callers as-is.
func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || IsValidationError(err) != nil
}
