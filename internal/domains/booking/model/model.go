package model

import (
	"time"
	"vista/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestID      = "guest_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
	FieldNights       = "nights"
	FieldTotalPrice   = "total_price"
)

const (
	StatusReserved   = "Reserved"
	StatusCheckedIn  = "Checked-In"
	StatusCheckedOut = "Checked-Out"
	StatusCancelled  = "Cancelled"
)

// Booking rows are read with the guest name and room number joined in.
type Booking struct {
	ID           string    `db:"id"`
	GuestID      string    `db:"guest_id"`
	RoomID       string    `db:"room_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`
	Nights       int       `db:"nights"`
	TotalPrice   float64   `db:"total_price"`
	GuestName    string    `db:"guest_name"  table:"guests" column:"name"`
	RoomNumber   string    `db:"room_number" table:"rooms"  column:"room_number"`
	model.Metadata
}

func (b Booking) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.guest_id JOIN rooms ON rooms.id = bookings.room_id"
}

// LengthOfStay is the number of nights between check-in and check-out.
func (b Booking) LengthOfStay() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// Nights counts calendar days between two dates, ignoring the time of day.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}
