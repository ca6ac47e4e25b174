package model

import (
	"time"
	"vista/shared/model"
)

const (
	OccupancyTableName  = "occupancy_data"
	OccupancyEntityName = "occupancy"
	RevenueTableName    = "revenue_data"
	RevenueEntityName   = "revenue"

	FieldID            = "id"
	FieldDate          = "date"
	FieldRoomsOccupied = "rooms_occupied"
	FieldTotalRooms    = "total_rooms"
	FieldOccupancyRate = "occupancy_rate"
	FieldRoomRevenue   = "room_revenue"
	FieldFnbRevenue    = "fnb_revenue"
	FieldOtherRevenue  = "other_revenue"
	FieldTotalRevenue  = "total_revenue"
)

// Occupancy is one day of room occupancy. Date is unique.
type Occupancy struct {
	ID            string    `db:"id"`
	Date          time.Time `db:"date"`
	RoomsOccupied int       `db:"rooms_occupied"`
	TotalRooms    int       `db:"total_rooms"`
	OccupancyRate float64   `db:"occupancy_rate"`
	model.Metadata
}

func (o Occupancy) Vacant() int {
	return o.TotalRooms - o.RoomsOccupied
}

// Revenue is one day of revenue by category. Date is unique.
type Revenue struct {
	ID           string    `db:"id"`
	Date         time.Time `db:"date"`
	RoomRevenue  float64   `db:"room_revenue"`
	FnbRevenue   float64   `db:"fnb_revenue"`
	OtherRevenue float64   `db:"other_revenue"`
	TotalRevenue float64   `db:"total_revenue"`
	model.Metadata
}
