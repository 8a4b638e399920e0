package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/mmynk/campsite/internal/calendar"
	"github.com/mmynk/campsite/internal/models"
)

// Policy bounds when and for how long the campsite can be reserved.
type Policy struct {
	// MinLeadDays is the minimum number of days between today and the last
	// day of a stay.
	MinLeadDays int

	// MaxLeadDays is how far ahead, in days, the last day of a stay may fall.
	MaxLeadDays int

	// MaxStayDays is the longest stay in calendar days.
	MaxStayDays int
}

// DefaultPolicy returns the campsite rules: arrive at least one day ahead,
// book at most 30 days out, stay up to three days.
func DefaultPolicy() Policy {
	return Policy{
		MinLeadDays: 1,
		MaxLeadDays: 30,
		MaxStayDays: 3,
	}
}

// Validate checks the policy itself is usable.
func (p Policy) Validate() error {
	if p.MinLeadDays < 0 {
		return fmt.Errorf("min lead days must not be negative, got %d", p.MinLeadDays)
	}
	if p.MaxLeadDays < p.MinLeadDays {
		return fmt.Errorf("max lead days (%d) must be at least min lead days (%d)", p.MaxLeadDays, p.MinLeadDays)
	}
	if p.MaxStayDays < 1 {
		return fmt.Errorf("max stay days must be at least 1, got %d", p.MaxStayDays)
	}
	return nil
}

// CheckRange applies the advance-window rule and then the max-length rule,
// returning on the first violation.
func (p Policy) CheckRange(today, start, end time.Time) error {
	lead := calendar.DaysBetween(today, end)
	if lead < p.MinLeadDays || lead > p.MaxLeadDays {
		return newValidationError(RuleAdvanceWindow, fmt.Sprintf(
			"the campsite can be reserved minimum %d day(s) ahead of arrival and up to %s in advance.",
			p.MinLeadDays, leadLimit(p.MaxLeadDays),
		))
	}

	span := calendar.DaysBetween(start, end)
	if span < 0 || span > p.MaxStayDays-1 {
		return newValidationError(RuleMaxLength, fmt.Sprintf(
			"the campsite can be reserved for max %d days and at least for 1 day.",
			p.MaxStayDays,
		))
	}

	return nil
}

// leadLimit names the advance limit the way guests are told it: the default
// 30 days reads as one month.
func leadLimit(days int) string {
	if days == 30 {
		return "1 month"
	}
	return fmt.Sprintf("%d days", days)
}

func validateOccupant(o models.Occupant) error {
	if strings.TrimSpace(o.Name) == "" || strings.TrimSpace(o.LastName) == "" {
		return newValidationError(RuleOccupant, "name and last name are required.")
	}
	if _, err := mail.ParseAddress(o.Email); err != nil {
		return newValidationError(RuleOccupant, "provide a valid email address.")
	}
	return nil
}
