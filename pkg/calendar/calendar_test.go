package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
)

func TestDayOf_UsesLocalCalendarDate(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, calendar.Date(2024, 3, 10), calendar.DayOf(instant, time.UTC))
	assert.Equal(t, calendar.Date(2024, 3, 11), calendar.DayOf(instant, tokyo))
}

func TestDayOf_MidnightBoundary(t *testing.T) {
	t.Parallel()

	late := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.NotEqual(t, calendar.DayOf(late, time.UTC), calendar.DayOf(early, time.UTC))
}

func TestDay_AddDaysAcrossMonthAndLeapYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, calendar.Date(2024, 2, 29), calendar.Date(2024, 2, 28).AddDays(1))
	assert.Equal(t, calendar.Date(2024, 3, 1), calendar.Date(2024, 2, 29).AddDays(1))
	assert.Equal(t, calendar.Date(2023, 12, 31), calendar.Date(2024, 1, 1).AddDays(-1))
}

func TestDay_DaysUntil(t *testing.T) {
	t.Parallel()

	start := calendar.Date(2024, 3, 1)

	assert.Equal(t, 0, start.DaysUntil(start))
	assert.Equal(t, 30, start.DaysUntil(calendar.Date(2024, 3, 31)))
	assert.Equal(t, -1, start.DaysUntil(calendar.Date(2024, 2, 29)))
	assert.Equal(t, 3652058, calendar.Date(1, 1, 1).DaysUntil(calendar.Date(9999, 12, 31)))
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	d, err := calendar.ParseDay("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2024, 6, 15), d)
	assert.Equal(t, "2024-06-15", d.String())

	_, err = calendar.ParseDay("15/06/2024")
	require.ErrorIs(t, err, calendar.ErrBadDay)
}

func TestDay_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(calendar.Date(2024, 1, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-05"`, string(data))

	var d calendar.Day
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-06"`), &d))
	assert.Equal(t, calendar.Date(2024, 1, 6), d)
}

func TestRange_Days(t *testing.T) {
	t.Parallel()

	r, err := calendar.NewRange(calendar.Date(2024, 2, 27), calendar.Date(2024, 3, 2))
	require.NoError(t, err)

	days, err := r.Days()
	require.NoError(t, err)

	require.Len(t, days, 5)
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, calendar.Date(2024, 2, 29), days[2])
	assert.Equal(t, calendar.Date(2024, 3, 2), days[4])
}

func TestRange_SingleDay(t *testing.T) {
	t.Parallel()

	d := calendar.Date(2024, 5, 5)

	days, err := calendar.Range{Start: d, End: d}.Days()
	require.NoError(t, err)
	assert.Equal(t, []calendar.Day{d}, days)
}

func TestRange_Inverted(t *testing.T) {
	t.Parallel()

	r := calendar.Range{Start: calendar.Date(2024, 5, 6), End: calendar.Date(2024, 5, 5)}

	_, err := r.Days()
	require.ErrorIs(t, err, calendar.ErrInvalidRange)
	assert.Equal(t, 0, r.Len())

	_, err = calendar.ParseRange("2024-05-06", "2024-05-05")
	require.ErrorIs(t, err, calendar.ErrInvalidRange)
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	r := calendar.Range{Start: calendar.Date(2024, 5, 1), End: calendar.Date(2024, 5, 3)}

	assert.True(t, r.Contains(calendar.Date(2024, 5, 1)))
	assert.True(t, r.Contains(calendar.Date(2024, 5, 3)))
	assert.False(t, r.Contains(calendar.Date(2024, 4, 30)))
	assert.False(t, r.Contains(calendar.Date(2024, 5, 4)))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	today := calendar.Date(2024, 3, 1)

	assert.Equal(t, calendar.LabelToday, calendar.Label(today, today, ""))
	assert.Equal(t, calendar.LabelYesterday, calendar.Label(calendar.Date(2024, 2, 29), today, ""))
	assert.Equal(t, "Wed, Feb 28 2024", calendar.Label(calendar.Date(2024, 2, 28), today, ""))
	assert.Equal(t, "2024-03-02", calendar.Label(calendar.Date(2024, 3, 2), today, calendar.ISOLayout))
}

func TestRange_String(t *testing.T) {
	t.Parallel()

	r := calendar.Range{Start: calendar.Date(2024, 5, 1), End: calendar.Date(2024, 5, 3)}

	assert.Equal(t, "2024-05-01 to 2024-05-03", r.String())
}

func TestRange_CheckLen(t *testing.T) {
	t.Parallel()

	start := calendar.Date(2020, 1, 1)

	atLimit := calendar.Range{Start: start, End: start.AddDays(calendar.MaxRangeDays - 1)}
	require.NoError(t, atLimit.CheckLen(calendar.MaxRangeDays))
	assert.Equal(t, calendar.MaxRangeDays, atLimit.Len())

	overLimit := calendar.Range{Start: start, End: start.AddDays(calendar.MaxRangeDays)}
	require.ErrorIs(t, overLimit.CheckLen(calendar.MaxRangeDays), calendar.ErrRangeTooLong)

	huge, err := calendar.ParseRange("0001-01-01", "9999-12-31")
	require.NoError(t, err)
	require.ErrorIs(t, huge.CheckLen(calendar.MaxRangeDays), calendar.ErrRangeTooLong)

	inverted := calendar.Range{Start: start, End: start.AddDays(-1)}
	require.NoError(t, inverted.CheckLen(calendar.MaxRangeDays))
}
