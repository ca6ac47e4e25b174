package dto

import (
	"time"
	"vista/internal/domains/analytics/model"
	"vista/shared/constant"
	"vista/shared/daterange"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

type RecordOccupancyRequest struct {
	Date          string `json:"date"           validate:"required,datetime=2006-01-02"`
	RoomsOccupied int    `json:"rooms_occupied" validate:"gte=0,ltefield=TotalRooms"`
	TotalRooms    int    `json:"total_rooms"    validate:"required,gt=0"`
}

func (r *RecordOccupancyRequest) ToModel(user string) (model.Occupancy, error) {
	date, err := time.Parse(constant.DateOnlyFormat, r.Date)
	if err != nil {
		return model.Occupancy{}, failure.BadRequest(err)
	}

	if r.TotalRooms <= 0 || r.RoomsOccupied < 0 || r.RoomsOccupied > r.TotalRooms {
		return model.Occupancy{}, failure.BadRequestFromString("rooms_occupied must be between 0 and total_rooms")
	}

	return model.Occupancy{
		ID:            uuid.NewString(),
		Date:          date,
		RoomsOccupied: r.RoomsOccupied,
		TotalRooms:    r.TotalRooms,
		OccupancyRate: float64(r.RoomsOccupied) / float64(r.TotalRooms) * 100,
		Metadata:      metadata(user),
	}, nil
}

type RecordRevenueRequest struct {
	Date         string  `json:"date"          validate:"required,datetime=2006-01-02"`
	RoomRevenue  float64 `json:"room_revenue"  validate:"gte=0"`
	FnbRevenue   float64 `json:"fnb_revenue"   validate:"gte=0"`
	OtherRevenue float64 `json:"other_revenue" validate:"gte=0"`
}

func (r *RecordRevenueRequest) ToModel(user string) (model.Revenue, error) {
	date, err := time.Parse(constant.DateOnlyFormat, r.Date)
	if err != nil {
		return model.Revenue{}, failure.BadRequest(err)
	}

	if r.RoomRevenue < 0 || r.FnbRevenue < 0 || r.OtherRevenue < 0 {
		return model.Revenue{}, failure.BadRequestFromString("revenue amounts must not be negative")
	}

	return model.Revenue{
		ID:           uuid.NewString(),
		Date:         date,
		RoomRevenue:  r.RoomRevenue,
		FnbRevenue:   r.FnbRevenue,
		OtherRevenue: r.OtherRevenue,
		TotalRevenue: r.RoomRevenue + r.FnbRevenue + r.OtherRevenue,
		Metadata:     metadata(user),
	}, nil
}

func metadata(user string) gModel.Metadata {
	now := timezone.Now()

	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}

// RangeFilter keeps rows of table whose date lies inside period, both ends included.
func RangeFilter(period daterange.Range, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "date_from",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    period.StartString(),
				Table:    table,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    period.EndString(),
				Table:    table,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

func (r *PeriodResponse) FromRange(period daterange.Range) {
	r.StartDate = period.StartString()
	r.EndDate = period.EndString()
	r.Days = period.Days()
}

type KPIValues struct {
	OccupancyRate   float64 `json:"occupancy_rate"`
	TotalRevenue    float64 `json:"total_revenue"`
	RoomRevenue     float64 `json:"room_revenue"`
	FnbRevenue      float64 `json:"fnb_revenue"`
	OtherRevenue    float64 `json:"other_revenue"`
	ADR             float64 `json:"adr"`
	RevPAR          float64 `json:"revpar"`
	Bookings        int     `json:"bookings"`
	AvgLengthOfStay float64 `json:"avg_length_of_stay"`
}

func (r *KPIValues) FromModel(kpi model.KPI) {
	r.OccupancyRate = kpi.OccupancyRate
	r.TotalRevenue = kpi.TotalRevenue
	r.RoomRevenue = kpi.RoomRevenue
	r.FnbRevenue = kpi.FnbRevenue
	r.OtherRevenue = kpi.OtherRevenue
	r.ADR = kpi.ADR
	r.RevPAR = kpi.RevPAR
	r.Bookings = kpi.Bookings
	r.AvgLengthOfStay = kpi.AvgLengthOfStay
}

// KPIChange holds the percentage change of every KPI against the previous period.
type KPIChange struct {
	OccupancyRate   float64 `json:"occupancy_rate"`
	TotalRevenue    float64 `json:"total_revenue"`
	RoomRevenue     float64 `json:"room_revenue"`
	FnbRevenue      float64 `json:"fnb_revenue"`
	OtherRevenue    float64 `json:"other_revenue"`
	ADR             float64 `json:"adr"`
	RevPAR          float64 `json:"revpar"`
	Bookings        float64 `json:"bookings"`
	AvgLengthOfStay float64 `json:"avg_length_of_stay"`
}

func (r *KPIChange) FromModels(current, previous model.KPI) {
	r.OccupancyRate = model.Change(current.OccupancyRate, previous.OccupancyRate)
	r.TotalRevenue = model.Change(current.TotalRevenue, previous.TotalRevenue)
	r.RoomRevenue = model.Change(current.RoomRevenue, previous.RoomRevenue)
	r.FnbRevenue = model.Change(current.FnbRevenue, previous.FnbRevenue)
	r.OtherRevenue = model.Change(current.OtherRevenue, previous.OtherRevenue)
	r.ADR = model.Change(current.ADR, previous.ADR)
	r.RevPAR = model.Change(current.RevPAR, previous.RevPAR)
	r.Bookings = model.Change(float64(current.Bookings), float64(previous.Bookings))
	r.AvgLengthOfStay = model.Change(current.AvgLengthOfStay, previous.AvgLengthOfStay)
}

type KPIResponse struct {
	Period         PeriodResponse `json:"period"`
	PreviousPeriod PeriodResponse `json:"previous_period"`
	Current        KPIValues      `json:"current"`
	Previous       KPIValues      `json:"previous"`
	Change         KPIChange      `json:"change"`
}

func (r *KPIResponse) FromModels(period daterange.Range, current, previous model.KPI) {
	r.Period.FromRange(period)
	r.PreviousPeriod.FromRange(period.Previous())
	r.Current.FromModel(current)
	r.Previous.FromModel(previous)
	r.Change.FromModels(current, previous)
}

type OccupancyRow struct {
	Date          string  `json:"date"`
	RoomsOccupied int     `json:"rooms_occupied"`
	TotalRooms    int     `json:"total_rooms"`
	VacantRooms   int     `json:"vacant_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type WeekdayResponse struct {
	Day     string  `json:"day"`
	Rate    float64 `json:"rate"`
	Samples int     `json:"samples"`
}

type OccupancyReportResponse struct {
	Period        PeriodResponse    `json:"period"`
	Average       float64           `json:"average"`
	Min           float64           `json:"min"`
	Max           float64           `json:"max"`
	AverageVacant float64           `json:"average_vacant"`
	ByWeekday     []WeekdayResponse `json:"by_weekday"`
	Days          []OccupancyRow    `json:"days"`
}

func (r *OccupancyReportResponse) FromModels(period daterange.Range, rows []model.Occupancy) {
	summary := model.SummarizeOccupancy(rows)

	r.Period.FromRange(period)
	r.Average = summary.Average
	r.Min = summary.Min
	r.Max = summary.Max
	r.AverageVacant = summary.AverageVacant

	r.ByWeekday = make([]WeekdayResponse, len(summary.ByWeekday))
	for i, day := range summary.ByWeekday {
		r.ByWeekday[i] = WeekdayResponse{Day: day.Day.String(), Rate: day.Rate, Samples: day.Samples}
	}

	r.Days = make([]OccupancyRow, len(rows))
	for i, row := range rows {
		r.Days[i] = OccupancyRow{
			Date:          row.Date.Format(constant.DateOnlyFormat),
			RoomsOccupied: row.RoomsOccupied,
			TotalRooms:    row.TotalRooms,
			VacantRooms:   row.Vacant(),
			OccupancyRate: row.OccupancyRate,
		}
	}
}

type RevenueRow struct {
	Date         string  `json:"date"`
	RoomRevenue  float64 `json:"room_revenue"`
	FnbRevenue   float64 `json:"fnb_revenue"`
	OtherRevenue float64 `json:"other_revenue"`
	TotalRevenue float64 `json:"total_revenue"`
}

type RevenueMix struct {
	Room  float64 `json:"room"`
	Fnb   float64 `json:"fnb"`
	Other float64 `json:"other"`
}

type RevenueTotals struct {
	Room  float64 `json:"room"`
	Fnb   float64 `json:"fnb"`
	Other float64 `json:"other"`
	Total float64 `json:"total"`
}

type RevenueReportResponse struct {
	Period PeriodResponse `json:"period"`
	Totals RevenueTotals  `json:"totals"`
	Mix    RevenueMix     `json:"mix"`
	// Trend is omitted when the period has too few days to compare weeks.
	Trend *float64     `json:"trend,omitempty"`
	Days  []RevenueRow `json:"days"`
}

func (r *RevenueReportResponse) FromModels(period daterange.Range, rows []model.Revenue) {
	summary := model.SummarizeRevenue(rows)

	r.Period.FromRange(period)
	r.Totals = RevenueTotals{Room: summary.Room, Fnb: summary.Fnb, Other: summary.Other, Total: summary.Total}
	r.Mix = RevenueMix{Room: summary.RoomShare, Fnb: summary.FnbShare, Other: summary.OtherShare}

	if summary.TrendAvailable {
		trend := summary.Trend
		r.Trend = &trend
	}

	r.Days = make([]RevenueRow, len(rows))
	for i, row := range rows {
		r.Days[i] = RevenueRow{
			Date:         row.Date.Format(constant.DateOnlyFormat),
			RoomRevenue:  row.RoomRevenue,
			FnbRevenue:   row.FnbRevenue,
			OtherRevenue: row.OtherRevenue,
			TotalRevenue: row.TotalRevenue,
		}
	}
}
