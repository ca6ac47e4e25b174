package model

import (
	"slices"
	"strconv"
	"vista/shared/model"

	"github.com/maruel/natural"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldRoomType   = "room_type"
	FieldStatus     = "status"
)

const (
	StatusVacant      = "Vacant"
	StatusOccupied    = "Occupied"
	StatusDirty       = "Dirty"
	StatusMaintenance = "Maintenance"
	StatusOutOfOrder  = "Out of Order"
)

// Statuses is the display order used by summaries.
var Statuses = []string{
	StatusVacant,
	StatusOccupied,
	StatusDirty,
	StatusMaintenance,
	StatusOutOfOrder,
}

const (
	RequestHousekeeping = "housekeeping"
	RequestMaintenance  = "maintenance"
)

type Room struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
	RoomType   string `db:"room_type"`
	Status     string `db:"status"`
	model.Metadata
}

// TypeCount is one row of a per-type aggregate.
type TypeCount struct {
	RoomType string `db:"room_type"`
	Count    int    `db:"count"`
}

// Floor is every leading digit of the room number except the last two.
// Numbers with one or two leading digits are on floor 1; numbers without any are on floor 0.
func (r Room) Floor() int {
	return Floor(r.RoomNumber)
}

func Floor(roomNumber string) int {
	end := 0
	for end < len(roomNumber) && roomNumber[end] >= '0' && roomNumber[end] <= '9' {
		end++
	}

	switch {
	case end == 0:
		return 0
	case end <= 2:
		return 1
	}

	floor, err := strconv.Atoi(roomNumber[:end-2])
	if err != nil {
		return 0
	}

	return floor
}

func (r Room) OutOfService() bool {
	return r.Status == StatusMaintenance || r.Status == StatusOutOfOrder
}

// SortByNumber orders rooms naturally by number so "2" precedes "10".
func SortByNumber(rooms []Room) {
	slices.SortStableFunc(rooms, func(a, b Room) int {
		switch {
		case natural.Less(a.RoomNumber, b.RoomNumber):
			return -1
		case natural.Less(b.RoomNumber, a.RoomNumber):
			return 1
		default:
			return 0
		}
	})
}
