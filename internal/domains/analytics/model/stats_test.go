package model_test

import (
	"testing"
	"time"
	"vista/internal/domains/analytics/model"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeKPI(t *testing.T) {
	tests := []struct {
		name      string
		occupancy []model.Occupancy
		revenue   []model.Revenue
		stays     []int
		want      model.KPI
	}{
		{
			name: "empty period",
			want: model.KPI{},
		},
		{
			name: "two days",
			occupancy: []model.Occupancy{
				{Date: day(1), RoomsOccupied: 40, TotalRooms: 50, OccupancyRate: 80},
				{Date: day(2), RoomsOccupied: 30, TotalRooms: 50, OccupancyRate: 60},
			},
			revenue: []model.Revenue{
				{Date: day(1), RoomRevenue: 1000, FnbRevenue: 300, OtherRevenue: 100, TotalRevenue: 1400},
				{Date: day(2), RoomRevenue: 400, FnbRevenue: 100, OtherRevenue: 0, TotalRevenue: 500},
			},
			stays: []int{1, 3},
			want: model.KPI{
				OccupancyRate:   70,
				TotalRevenue:    1900,
				RoomRevenue:     1400,
				FnbRevenue:      400,
				OtherRevenue:    100,
				ADR:             20,
				RevPAR:          14,
				Bookings:        2,
				AvgLengthOfStay: 2,
			},
		},
		{
			name: "revenue without occupancy",
			revenue: []model.Revenue{
				{Date: day(1), RoomRevenue: 1000, TotalRevenue: 1000},
			},
			want: model.KPI{TotalRevenue: 1000, RoomRevenue: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ComputeKPI(tt.occupancy, tt.revenue, tt.stays))
		})
	}
}

func TestChange(t *testing.T) {
	assert.Equal(t, 0.0, model.Change(50, 0))
	assert.Equal(t, 50.0, model.Change(150, 100))
	assert.Equal(t, -25.0, model.Change(75, 100))
}

func TestSummarizeOccupancy(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-08 a Sunday.
	rows := []model.Occupancy{
		{Date: day(2), RoomsOccupied: 25, TotalRooms: 50, OccupancyRate: 50},
		{Date: day(8), RoomsOccupied: 45, TotalRooms: 50, OccupancyRate: 90},
		{Date: day(9), RoomsOccupied: 35, TotalRooms: 50, OccupancyRate: 70},
	}

	summary := model.SummarizeOccupancy(rows)

	assert.Equal(t, 70.0, summary.Average)
	assert.Equal(t, 50.0, summary.Min)
	assert.Equal(t, 90.0, summary.Max)
	assert.Equal(t, 15.0, summary.AverageVacant)
	assert.Len(t, summary.ByWeekday, 7)
	assert.Equal(t, time.Monday, summary.ByWeekday[0].Day)
	assert.Equal(t, 60.0, summary.ByWeekday[0].Rate)
	assert.Equal(t, 2, summary.ByWeekday[0].Samples)
	assert.Equal(t, time.Sunday, summary.ByWeekday[6].Day)
	assert.Equal(t, 90.0, summary.ByWeekday[6].Rate)
	assert.Equal(t, 0.0, summary.ByWeekday[3].Rate)
}

func TestSummarizeRevenue(t *testing.T) {
	t.Run("mix", func(t *testing.T) {
		summary := model.SummarizeRevenue([]model.Revenue{
			{Date: day(1), RoomRevenue: 1000, FnbRevenue: 300, OtherRevenue: 100, TotalRevenue: 1400},
			{Date: day(2), RoomRevenue: 500, FnbRevenue: 0, OtherRevenue: 100, TotalRevenue: 600},
		})

		assert.Equal(t, 2000.0, summary.Total)
		assert.InDelta(t, 75.0, summary.RoomShare, 0.0001)
		assert.InDelta(t, 15.0, summary.FnbShare, 0.0001)
		assert.InDelta(t, 10.0, summary.OtherShare, 0.0001)
		assert.False(t, summary.TrendAvailable)
	})

	t.Run("no revenue", func(t *testing.T) {
		summary := model.SummarizeRevenue(nil)

		assert.Equal(t, 0.0, summary.RoomShare)
		assert.Equal(t, 0.0, summary.Trend)
	})
}

func TestTrend(t *testing.T) {
	rows := []model.Revenue{}
	for d := 14; d >= 1; d-- {
		total := 100.0
		if d > 7 {
			total = 150
		}

		rows = append(rows, model.Revenue{Date: day(d), TotalRevenue: total})
	}

	trend, ok := model.Trend(rows)

	assert.True(t, ok)
	assert.Equal(t, 50.0, trend)

	_, ok = model.Trend(rows[:10])
	assert.False(t, ok)
}
