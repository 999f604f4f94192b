package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_DateOnly(t *testing.T) {
	d, err := ParseDueDate("2023-01-01")
	require.NoError(t, err)

	assert.False(t, d.HasTime())
	assert.Equal(t, "2023-01-01", d.String())
	assert.Equal(t, "2023-01-01", d.CalendarDate())
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), d.Time(time.UTC))
	assert.Equal(t, time.Date(2023, 1, 1, 23, 59, 59, 0, time.UTC), d.EffectiveDeadline(time.UTC))
}

func TestParseDueDate_LocalDateTime(t *testing.T) {
	madrid := time.FixedZone("CET", 3600)

	d, err := ParseDueDate("2024-03-10T14:30")
	require.NoError(t, err)

	assert.True(t, d.HasTime())
	assert.Equal(t, "2024-03-10", d.CalendarDate())
	want := time.Date(2024, 3, 10, 14, 30, 0, 0, madrid)
	assert.True(t, want.Equal(d.EffectiveDeadline(madrid)))
}

func TestParseDueDate_ZonedDateTime(t *testing.T) {
	d, err := ParseDueDate("2024-03-10T23:30:00-05:00")
	require.NoError(t, err)

	assert.True(t, d.HasTime())
	// Calendar portion follows the literal, not UTC.
	assert.Equal(t, "2024-03-10", d.CalendarDate())

	want := time.Date(2024, 3, 11, 4, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(d.EffectiveDeadline(time.UTC)))
	assert.True(t, want.Equal(d.EffectiveDeadline(time.Local)), "zoned literal ignores location")
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "mañana", "2023-13-01", "01/02/2023", "2023-01-01T25:00"} {
		_, err := ParseDueDate(in)
		assert.ErrorIs(t, err, ErrInvalidDueDate, "input %q", in)
	}
}

func TestNewDueDatePtr_Blank(t *testing.T) {
	d, err := NewDueDatePtr("  ")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDueDate_OverdueAt(t *testing.T) {
	d, err := ParseDueDate("2023-01-01")
	require.NoError(t, err)

	assert.False(t, d.OverdueAt(time.Date(2023, 1, 1, 23, 59, 59, 0, time.UTC), time.UTC), "deadline itself is not overdue")
	assert.True(t, d.OverdueAt(time.Date(2023, 1, 2, 0, 0, 1, 0, time.UTC), time.UTC))

	timed, err := ParseDueDate("2023-01-01T09:00")
	require.NoError(t, err)
	assert.True(t, timed.OverdueAt(time.Date(2023, 1, 1, 9, 0, 1, 0, time.UTC), time.UTC))
	assert.False(t, timed.OverdueAt(time.Date(2023, 1, 1, 8, 59, 0, 0, time.UTC), time.UTC))
}
