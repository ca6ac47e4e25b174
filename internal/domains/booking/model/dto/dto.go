package dto

import (
	"time"
	"vista/internal/domains/booking/model"
	"vista/shared"
	"vista/shared/constant"
	"vista/shared/daterange"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	GuestID      string  `json:"guest_id"       validate:"required,uuid"`
	RoomID       string  `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string  `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	TotalPrice   float64 `json:"total_price"    validate:"gte=0"`
}

// ToModel rejects stays that do not last at least one night.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err)
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err)
	}

	nights := model.Nights(checkIn, checkOut)
	if nights < 1 {
		return model.Booking{}, failure.BadRequestFromString("check-out date must be after check-in date")
	}

	return model.Booking{
		ID:           uuid.NewString(),
		GuestID:      c.GuestID,
		RoomID:       c.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.StatusReserved,
		Nights:       nights,
		TotalPrice:   c.TotalPrice,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

// ListFilter narrows the booking list to check-ins inside a period.
type ListFilter struct {
	Period daterange.Range
	Status string
}

func (f ListFilter) FilterGroup() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			ArgName:  "check_in_from",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    f.Period.StartString(),
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "check_in_to",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    f.Period.EndString(),
			Table:    model.TableName,
		},
	}

	if f.Status != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "status",
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Status,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

// DayFilter matches bookings whose date field equals day and whose status is one of statuses.
func DayFilter(field, day string, statuses ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  field,
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    day,
				Table:    model.TableName,
			},
			shared.FilterIn(model.FieldStatus, model.TableName, statuses),
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

type BookingResponse struct {
	ID           string  `json:"id"`
	GuestID      string  `json:"guest_id"`
	GuestName    string  `json:"guest_name"`
	RoomID       string  `json:"room_id"`
	RoomNumber   string  `json:"room_number"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Status       string  `json:"status"`
	Nights       int     `json:"nights"`
	TotalPrice   float64 `json:"total_price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.GuestName = model.GuestName
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Nights = model.Nights
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = FromModels(models)
}

type TodayResponse struct {
	Date       string            `json:"date"`
	Arrivals   []BookingResponse `json:"arrivals"`
	Departures []BookingResponse `json:"departures"`
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
