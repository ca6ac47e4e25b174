package model

import (
	"slices"
	"time"
)

// trendMinDays is the number of daily rows needed before a first-week/last-week trend is reported.
const (
	trendMinDays = 11
	trendWindow  = 7
)

// Weekdays lists days of the week Monday first.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

type KPI struct {
	OccupancyRate   float64
	TotalRevenue    float64
	RoomRevenue     float64
	FnbRevenue      float64
	OtherRevenue    float64
	ADR             float64
	RevPAR          float64
	Bookings        int
	AvgLengthOfStay float64
}

// ComputeKPI derives the headline figures of a period. stays holds the length in nights of every booking.
func ComputeKPI(occupancy []Occupancy, revenue []Revenue, stays []int) KPI {
	kpi := KPI{Bookings: len(stays)}

	var occupied, available int

	rates := make([]float64, len(occupancy))
	for i, row := range occupancy {
		rates[i] = row.OccupancyRate
		occupied += row.RoomsOccupied
		available += row.TotalRooms
	}

	kpi.OccupancyRate = Mean(rates)

	for _, row := range revenue {
		kpi.TotalRevenue += row.TotalRevenue
		kpi.RoomRevenue += row.RoomRevenue
		kpi.FnbRevenue += row.FnbRevenue
		kpi.OtherRevenue += row.OtherRevenue
	}

	kpi.ADR = Ratio(kpi.RoomRevenue, float64(occupied))
	kpi.RevPAR = Ratio(kpi.RoomRevenue, float64(available))

	nights := make([]float64, len(stays))
	for i, stay := range stays {
		nights[i] = float64(stay)
	}

	kpi.AvgLengthOfStay = Mean(nights)

	return kpi
}

// Change is the percentage change from previous to current, 0 when previous is 0.
func Change(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

type WeekdayAverage struct {
	Day     time.Weekday
	Rate    float64
	Samples int
}

type OccupancySummary struct {
	Average       float64
	Min           float64
	Max           float64
	AverageVacant float64
	ByWeekday     []WeekdayAverage
}

func SummarizeOccupancy(rows []Occupancy) OccupancySummary {
	summary := OccupancySummary{ByWeekday: make([]WeekdayAverage, len(Weekdays))}

	rates := make([]float64, len(rows))
	vacant := make([]float64, len(rows))
	byDay := map[time.Weekday][]float64{}

	for i, row := range rows {
		rates[i] = row.OccupancyRate
		vacant[i] = float64(row.Vacant())
		byDay[row.Date.Weekday()] = append(byDay[row.Date.Weekday()], row.OccupancyRate)
	}

	if len(rates) > 0 {
		summary.Min = slices.Min(rates)
		summary.Max = slices.Max(rates)
	}

	summary.Average = Mean(rates)
	summary.AverageVacant = Mean(vacant)

	for i, day := range Weekdays {
		summary.ByWeekday[i] = WeekdayAverage{
			Day:     day,
			Rate:    Mean(byDay[day]),
			Samples: len(byDay[day]),
		}
	}

	return summary
}

type RevenueSummary struct {
	Total          float64
	Room           float64
	Fnb            float64
	Other          float64
	RoomShare      float64
	FnbShare       float64
	OtherShare     float64
	Trend          float64
	TrendAvailable bool
}

func SummarizeRevenue(rows []Revenue) RevenueSummary {
	var summary RevenueSummary

	for _, row := range rows {
		summary.Total += row.TotalRevenue
		summary.Room += row.RoomRevenue
		summary.Fnb += row.FnbRevenue
		summary.Other += row.OtherRevenue
	}

	summary.RoomShare = Ratio(summary.Room, summary.Total) * 100
	summary.FnbShare = Ratio(summary.Fnb, summary.Total) * 100
	summary.OtherShare = Ratio(summary.Other, summary.Total) * 100

	summary.Trend, summary.TrendAvailable = Trend(rows)

	return summary
}

// Trend compares the mean daily total of the last week of rows with the first week.
func Trend(rows []Revenue) (float64, bool) {
	if len(rows) < trendMinDays {
		return 0, false
	}

	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b Revenue) int {
		return a.Date.Compare(b.Date)
	})

	first := make([]float64, trendWindow)
	last := make([]float64, trendWindow)

	for i := range trendWindow {
		first[i] = sorted[i].TotalRevenue
		last[i] = sorted[len(sorted)-trendWindow+i].TotalRevenue
	}

	return Change(Mean(last), Mean(first)), true
}
