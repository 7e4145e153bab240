package request

import (
	"time"

	requesterrors "go-vacation/internal/request/errors"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const dateLayout = "2006-01-02"

// IsValidStatus reports whether s is one of the three legal statuses.
// Matching is exact: no case folding, no aliases.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// ValidateSubmission applies the submission rules in order, first failure
// wins. It is pure: no clock, no storage. The start-not-in-the-past rule
// stays in the presentation layer and is intentionally not checked here.
func ValidateSubmission(req CreateVacationRequest) (startDate, endDate time.Time, err error) {
	if req.UserID == 0 || req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, requesterrors.ErrMissingFields
	}

	startDate, err = parseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err = parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// DurationDays returns the inclusive day count of a date range:
// 2024-01-10 through 2024-01-12 is 3 days.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}
