package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange_RejectsEmptyAndInverted(t *testing.T) {
	_, err := NewDateRange(date(2024, 6, 10), date(2024, 6, 10))
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	_, err = NewDateRange(date(2024, 6, 10), date(2024, 6, 9))
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestNewDateRange_TruncatesToUTCDays(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	r, err := NewDateRange(
		time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 13, 23, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 10), r.Start)
	assert.Equal(t, date(2024, 6, 13), r.End)
	assert.Equal(t, 3, r.Nights())
}

func TestDateRange_Overlaps(t *testing.T) {
	booked := DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 10)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"inside", DateRange{date(2024, 6, 5), date(2024, 6, 7)}, true},
		{"touching end", DateRange{date(2024, 6, 10), date(2024, 6, 12)}, false},
		{"touching start", DateRange{date(2024, 5, 28), date(2024, 6, 1)}, false},
		{"straddling start", DateRange{date(2024, 5, 30), date(2024, 6, 2)}, true},
		{"straddling end", DateRange{date(2024, 6, 9), date(2024, 6, 11)}, true},
		{"enclosing", DateRange{date(2024, 5, 1), date(2024, 7, 1)}, true},
		{"identical", booked, true},
		{"disjoint", DateRange{date(2024, 7, 1), date(2024, 7, 3)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(booked), "overlap must be symmetric")
		})
	}
}

func TestMonthRange(t *testing.T) {
	r, err := MonthRange(12, 2024)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 12, 1), r.Start)
	assert.Equal(t, date(2025, 1, 1), r.End)
	assert.True(t, r.Contains(date(2024, 12, 31)))
	assert.False(t, r.Contains(date(2025, 1, 1)))

	_, err = MonthRange(13, 2024)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestError_KindMatching(t *testing.T) {
	err := fmt.Errorf("loading booking: %w", NewNotFoundError("Booking", "42"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))

	denied := NewAccessDeniedError("customer", "refund booking")
	assert.Equal(t, "customer", denied.Role)
	assert.Contains(t, denied.Error(), "customer")

	up := NewUpstreamError("identity gateway", errors.New("dial tcp: timeout"))
	assert.True(t, errors.Is(up, ErrUpstreamUnavailable))
	assert.Contains(t, up.Error(), "dial tcp")
}
