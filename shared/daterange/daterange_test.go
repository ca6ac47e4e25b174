package daterange_test

import (
	"testing"
	"time"
	"vista/shared/daterange"
	"vista/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, timezone.GetLocation())
}

func TestFromPreset(t *testing.T) {
	now := time.Date(2024, time.March, 15, 17, 45, 0, 0, timezone.GetLocation())

	tests := []struct {
		name      string
		preset    string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{name: "last 7 days", preset: daterange.PresetLast7Days, wantStart: date(2024, time.March, 8), wantEnd: date(2024, time.March, 15)},
		{name: "last 30 days", preset: daterange.PresetLast30Days, wantStart: date(2024, time.February, 14), wantEnd: date(2024, time.March, 15)},
		{name: "this month", preset: daterange.PresetThisMonth, wantStart: date(2024, time.March, 1), wantEnd: date(2024, time.March, 15)},
		{name: "last month", preset: daterange.PresetLastMonth, wantStart: date(2024, time.February, 1), wantEnd: date(2024, time.February, 29)},
		{name: "year to date", preset: daterange.PresetYearToDate, wantStart: date(2024, time.January, 1), wantEnd: date(2024, time.March, 15)},
		{name: "unknown preset", preset: "fortnight", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := daterange.FromPreset(tt.preset, now)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start %s", got.Start)
			assert.True(t, tt.wantEnd.Equal(got.End), "end %s", got.End)
		})
	}
}

func TestDefault_MatchesLast30Days(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, timezone.GetLocation())

	preset, err := daterange.FromPreset(daterange.PresetLast30Days, now)
	assert.NoError(t, err)

	assert.Equal(t, preset.String(), daterange.Default(now).String())
	assert.Equal(t, 31, preset.Days())
}

func TestParse(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, timezone.GetLocation())

	t.Run("defaults to the last thirty days", func(t *testing.T) {
		got, err := daterange.Parse("", "", now)

		assert.NoError(t, err)
		assert.Equal(t, "2024-02-14", got.StartString())
		assert.Equal(t, "2024-03-15", got.EndString())
	})

	t.Run("explicit range", func(t *testing.T) {
		got, err := daterange.Parse("2024-01-01", "2024-01-31", now)

		assert.NoError(t, err)
		assert.Equal(t, 31, got.Days())
	})

	t.Run("inverted range moves start to the day before end", func(t *testing.T) {
		got, err := daterange.Parse("2024-02-10", "2024-02-05", now)

		assert.NoError(t, err)
		assert.Equal(t, "2024-02-04", got.StartString())
		assert.Equal(t, "2024-02-05", got.EndString())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := daterange.Parse("03/01/2024", "", now)

		assert.Error(t, err)
	})
}

func TestRange_Previous(t *testing.T) {
	current := daterange.Range{Start: date(2024, time.March, 8), End: date(2024, time.March, 14)}

	prev := current.Previous()

	assert.Equal(t, "2024-03-01", prev.StartString())
	assert.Equal(t, "2024-03-07", prev.EndString())
	assert.Equal(t, current.Days(), prev.Days())
}

func TestRange_Contains(t *testing.T) {
	r := daterange.Range{Start: date(2024, time.March, 1), End: date(2024, time.March, 3)}

	assert.True(t, r.Contains(time.Date(2024, time.March, 3, 23, 59, 0, 0, timezone.GetLocation())))
	assert.False(t, r.Contains(date(2024, time.March, 4)))
	assert.True(t, r.EndExclusive().Equal(date(2024, time.March, 4)))
}
