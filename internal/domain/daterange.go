package domain

import "time"

const day = 24 * time.Hour

// DateRange is a half-open [Start, End) span of UTC calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both bounds to UTC midnight and requires End after Start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
	if !r.End.After(r.Start) {
		return DateRange{}, NewValidationError("check-out date must be after check-in date")
	}
	return r, nil
}

// TruncateDay returns the UTC midnight of t's calendar day.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights in the range.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start) / day)
}

// Overlaps reports whether the two half-open ranges share any instant.
// A range ending on day X does not overlap one starting on day X.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether t falls inside [Start, End).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// MonthRange returns the [first day, first day of next month) range for month/year.
func MonthRange(month, year int) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, NewValidationError("month must be between 1 and 12")
	}
	if year < 1 {
		return DateRange{}, NewValidationError("year must be positive")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
}
