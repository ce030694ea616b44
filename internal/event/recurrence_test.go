package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestExpandWeeklyMondayWednesday(t *testing.T) {
	start := date(2024, 1, 1, 18, 0)
	end := date(2024, 1, 1, 19, 30)

	occ, err := Expand(start, end, RepeatWeekly, date(2024, 1, 15, 0, 0), []int{1, 3})
	require.NoError(t, err)
	require.Len(t, occ, 5)

	want := []time.Time{
		date(2024, 1, 1, 18, 0),
		date(2024, 1, 3, 18, 0),
		date(2024, 1, 8, 18, 0),
		date(2024, 1, 10, 18, 0),
		date(2024, 1, 15, 18, 0),
	}
	for i, o := range occ {
		assert.True(t, want[i].Equal(o.Start), "occurrence %d: got %s", i, o.Start)
		assert.Equal(t, 90*time.Minute, o.End.Sub(o.Start))
	}
}

func TestExpandCustomMatchesWeekly(t *testing.T) {
	start := date(2024, 1, 1, 18, 0)
	end := date(2024, 1, 1, 19, 30)
	until := date(2024, 1, 15, 0, 0)

	weekly, err := Expand(start, end, RepeatWeekly, until, []int{1, 3})
	require.NoError(t, err)
	custom, err := Expand(start, end, RepeatCustom, until, []int{3, 1})
	require.NoError(t, err)
	require.Len(t, custom, len(weekly))
	for i := range weekly {
		assert.True(t, weekly[i].Start.Equal(custom[i].Start))
		assert.True(t, weekly[i].End.Equal(custom[i].End))
	}
}

func TestExpandWeekdayProjection(t *testing.T) {
	// Thursday start, two months of Tue/Thu/Sat.
	start := date(2024, 3, 7, 9, 15)
	end := start.Add(time.Hour)
	until := date(2024, 5, 6, 0, 0)
	days := []int{2, 4, 6}

	occ, err := Expand(start, end, RepeatWeekly, until, days)
	require.NoError(t, err)

	allowed := map[time.Weekday]bool{time.Tuesday: true, time.Thursday: true, time.Saturday: true}
	limit := date(2024, 5, 7, 0, 0)
	expected := 0
	for d := start; d.Before(limit); d = d.AddDate(0, 0, 1) {
		if allowed[d.Weekday()] {
			expected++
		}
	}

	assert.Len(t, occ, expected)
	for i, o := range occ {
		assert.True(t, allowed[o.Start.Weekday()], "unexpected weekday %s", o.Start.Weekday())
		assert.False(t, o.Start.Before(start))
		assert.True(t, o.Start.Before(limit))
		if i > 0 {
			assert.True(t, occ[i-1].Start.Before(o.Start), "not strictly ascending at %d", i)
		}
	}
}

func TestExpandSkipsDaysBeforeStart(t *testing.T) {
	// Wednesday start; Monday of the first week is before start.
	start := date(2024, 1, 3, 18, 0)
	occ, err := Expand(start, start.Add(time.Hour), RepeatCustom, date(2024, 1, 8, 0, 0), []int{1})
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.True(t, date(2024, 1, 8, 18, 0).Equal(occ[0].Start))
}

func TestExpandUntilIsInclusiveDate(t *testing.T) {
	start := date(2024, 1, 1, 23, 30)
	// until carries a time of day that is earlier than start's; only the date counts.
	occ, err := Expand(start, start.Add(time.Hour), RepeatWeekly, date(2024, 1, 8, 6, 0), []int{1})
	require.NoError(t, err)
	assert.Len(t, occ, 2)
}

func TestExpandKeepsLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2024, 1, 1, 18, 0, 0, 0, loc)
	occ, err := Expand(start, start.Add(time.Hour), RepeatCustom, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), []int{1, 2})
	require.NoError(t, err)
	require.Len(t, occ, 2)
	for _, o := range occ {
		assert.Equal(t, loc, o.Start.Location())
		assert.Equal(t, 18, o.Start.Hour())
	}
}

func TestExpandErrors(t *testing.T) {
	start := date(2024, 1, 1, 18, 0)
	end := start.Add(time.Hour)

	tests := []struct {
		name  string
		mode  RepeatMode
		until time.Time
		days  []int
	}{
		{"no weekdays", RepeatWeekly, date(2024, 2, 1, 0, 0), nil},
		{"weekday out of range", RepeatWeekly, date(2024, 2, 1, 0, 0), []int{7}},
		{"negative weekday", RepeatCustom, date(2024, 2, 1, 0, 0), []int{-1}},
		{"unknown mode", RepeatMode("daily"), date(2024, 2, 1, 0, 0), []int{1}},
		{"until before start", RepeatWeekly, date(2023, 12, 1, 0, 0), []int{1}},
		{"no matching day in range", RepeatCustom, date(2024, 1, 2, 0, 0), []int{5}},
		{"too many occurrences", RepeatCustom, date(2030, 1, 1, 0, 0), []int{0, 1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, err := Expand(start, end, tt.mode, tt.until, tt.days)
			require.Error(t, err)
			assert.Nil(t, occ)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		})
	}
}

func TestExpandEmptyResultMessage(t *testing.T) {
	start := date(2024, 1, 1, 18, 0)
	_, err := Expand(start, start, RepeatWeekly, date(2024, 1, 2, 0, 0), []int{5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid dates generated")
}
