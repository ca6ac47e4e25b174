// Package daterange resolves the reporting periods used by the analytics pages.
//
// Dates are naive calendar days in the application timezone: a Range always starts
// and ends at midnight and both ends are inclusive.
package daterange

import (
	"fmt"
	"time"
	"vista/shared/constant"
	"vista/shared/failure"
	"vista/shared/timezone"
)

const (
	PresetLast7Days  = "last_7_days"
	PresetLast30Days = "last_30_days"
	PresetThisMonth  = "this_month"
	PresetLastMonth  = "last_month"
	PresetYearToDate = "year_to_date"

	DefaultDays = 30
	WeekDays    = 7
)

var Presets = []string{
	PresetLast7Days,
	PresetLast30Days,
	PresetThisMonth,
	PresetLastMonth,
	PresetYearToDate,
}

type Range struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight of its calendar day in the application timezone.
func Day(t time.Time) time.Time {
	return timezone.StartOfDay(t)
}

// Default is the same period as the last_30_days preset.
func Default(now time.Time) Range {
	return lastDays(DefaultDays, now)
}

// lastDays runs from n days before today through today, so it covers n+1 calendar days.
func lastDays(n int, now time.Time) Range {
	today := Day(now)

	return Range{Start: today.AddDate(0, 0, -n), End: today}
}

func FromPreset(preset string, now time.Time) (Range, error) {
	today := Day(now)

	switch preset {
	case PresetLast7Days:
		return lastDays(WeekDays, now), nil
	case PresetLast30Days:
		return lastDays(DefaultDays, now), nil
	case PresetThisMonth:
		return Range{Start: today.AddDate(0, 0, 1-today.Day()), End: today}, nil
	case PresetLastMonth:
		firstOfMonth := today.AddDate(0, 0, 1-today.Day())

		return Range{Start: firstOfMonth.AddDate(0, -1, 0), End: firstOfMonth.AddDate(0, 0, -1)}, nil
	case PresetYearToDate:
		return Range{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), End: today}, nil
	default:
		return Range{}, failure.BadRequestFromString(fmt.Sprintf("unknown date preset %q", preset))
	}
}

// Parse reads two YYYY-MM-DD dates. Either side may be empty, in which case the
// default range fills it in.
func Parse(start, end string, now time.Time) (Range, error) {
	res := Default(now)

	if start != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, start)
		if err != nil {
			return res, failure.BadRequestFromString("start_date must match the format " + constant.DateOnlyFormat)
		}

		res.Start = Day(parsed)
	}

	if end != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, end)
		if err != nil {
			return res, failure.BadRequestFromString("end_date must match the format " + constant.DateOnlyFormat)
		}

		res.End = Day(parsed)
	}

	return res.Normalize(), nil
}

// Resolve prefers the preset when one is given.
func Resolve(preset, start, end string, now time.Time) (Range, error) {
	if preset != constant.Empty {
		return FromPreset(preset, now)
	}

	return Parse(start, end, now)
}

// Normalize moves an inverted start to the day before the end.
func (r Range) Normalize() Range {
	if r.Start.After(r.End) {
		r.Start = r.End.AddDate(0, 0, -1)
	}

	return r
}

// Days counts the calendar days covered, both ends included.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/constant.HoursPerDay+0.5) + 1
}

// Previous is the period of equal length ending the day before Start.
func (r Range) Previous() Range {
	end := r.Start.AddDate(0, 0, -1)

	return Range{Start: end.AddDate(0, 0, 1-r.Days()), End: end}
}

// EndExclusive is midnight after End, for half-open timestamp filters.
func (r Range) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

func (r Range) Contains(t time.Time) bool {
	day := Day(t)

	return !day.Before(r.Start) && !day.After(r.End)
}

func (r Range) StartString() string {
	return r.Start.Format(constant.DateOnlyFormat)
}

func (r Range) EndString() string {
	return r.End.Format(constant.DateOnlyFormat)
}

func (r Range) String() string {
	return r.StartString() + "_" + r.EndString()
}
