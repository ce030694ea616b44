package event

import (
	"fmt"
	"sort"
	"time"

	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

type RepeatMode string

const (
	RepeatWeekly RepeatMode = "weekly"
	RepeatCustom RepeatMode = "custom"
)

// MaxOccurrences bounds a single recurrence request.
const MaxOccurrences = 1000

// Occurrence is one concrete instance of a recurring event.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Expand materializes the occurrences of a recurring event in ascending order.
//
// Weekdays use 0=Sunday..6=Saturday. until is a calendar date and is
// inclusive; only its year, month and day are read, interpreted in start's
// location. Every occurrence keeps the duration end-start.
func Expand(start, end time.Time, mode RepeatMode, until time.Time, weekdays []int) ([]Occurrence, error) {
	days, err := normalizeWeekdays(weekdays)
	if err != nil {
		return nil, err
	}

	loc := start.Location()
	uy, um, ud := until.Date()
	limit := time.Date(uy, um, ud+1, 0, 0, 0, 0, loc)
	duration := end.Sub(start)

	var starts []time.Time
	switch mode {
	case RepeatWeekly:
		starts, err = expandWeekly(start, limit, days)
	case RepeatCustom:
		starts, err = expandCustom(start, limit, days)
	default:
		return nil, apperrors.Validation(fmt.Sprintf("unknown repeat mode %q", mode))
	}
	if err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, apperrors.Validation("no valid dates generated")
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	out := make([]Occurrence, len(starts))
	for i, s := range starts {
		out[i] = Occurrence{Start: s, End: s.Add(duration)}
	}
	return out, nil
}

// expandWeekly walks 7-day windows anchored at start and projects each
// selected weekday into the window.
func expandWeekly(start, limit time.Time, days []int) ([]time.Time, error) {
	var out []time.Time
	for anchor := start; anchor.Before(limit); anchor = anchor.AddDate(0, 0, 7) {
		anchorWd := int(anchor.Weekday())
		for _, wd := range days {
			occ := anchor.AddDate(0, 0, (wd-anchorWd+7)%7)
			if occ.Before(start) || !occ.Before(limit) {
				continue
			}
			out = append(out, occ)
			if len(out) > MaxOccurrences {
				return nil, tooMany()
			}
		}
	}
	return out, nil
}

// expandCustom walks single days from start's midnight and places an
// occurrence at start's wall clock on every selected weekday.
func expandCustom(start, limit time.Time, days []int) ([]time.Time, error) {
	selected := make(map[time.Weekday]bool, len(days))
	for _, wd := range days {
		selected[time.Weekday(wd)] = true
	}

	loc := start.Location()
	hour, minute, sec := start.Clock()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	var out []time.Time
	for ; day.Before(limit); day = day.AddDate(0, 0, 1) {
		if !selected[day.Weekday()] {
			continue
		}
		occ := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, start.Nanosecond(), loc)
		if occ.Before(start) {
			continue
		}
		out = append(out, occ)
		if len(out) > MaxOccurrences {
			return nil, tooMany()
		}
	}
	return out, nil
}

func normalizeWeekdays(weekdays []int) ([]int, error) {
	if len(weekdays) == 0 {
		return nil, apperrors.Validation("no valid dates generated")
	}
	seen := make(map[int]bool, len(weekdays))
	days := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return nil, apperrors.Validation(fmt.Sprintf("invalid weekday %d: expected 0 (Sunday) to 6 (Saturday)", wd))
		}
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	sort.Ints(days)
	return days, nil
}

func tooMany() error {
	return apperrors.Validation(fmt.Sprintf("recurrence generates more than %d occurrences", MaxOccurrences))
}
