package dto_test

import (
	"net/http"
	"testing"
	"vista/internal/domains/analytics/model/dto"
	"vista/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestRecordRevenueRequest_ToModel(t *testing.T) {
	req := dto.RecordRevenueRequest{Date: "2026-03-01", RoomRevenue: 1000, FnbRevenue: 300, OtherRevenue: 100}

	row, err := req.ToModel("u1")

	assert.NoError(t, err)
	assert.Equal(t, 1400.0, row.TotalRevenue)
	assert.Equal(t, "2026-03-01", row.Date.Format("2006-01-02"))
	assert.Equal(t, "u1", row.CreatedBy)
}

func TestRecordOccupancyRequest_ToModel(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RecordOccupancyRequest
		wantRate float64
		wantCode int
	}{
		{name: "rate in percent", req: dto.RecordOccupancyRequest{Date: "2026-03-01", RoomsOccupied: 30, TotalRooms: 40}, wantRate: 75},
		{name: "empty hotel", req: dto.RecordOccupancyRequest{Date: "2026-03-01", RoomsOccupied: 0, TotalRooms: 40}, wantRate: 0},
		{name: "more occupied than rooms", req: dto.RecordOccupancyRequest{Date: "2026-03-01", RoomsOccupied: 41, TotalRooms: 40}, wantCode: http.StatusBadRequest},
		{name: "no rooms", req: dto.RecordOccupancyRequest{Date: "2026-03-01"}, wantCode: http.StatusBadRequest},
		{name: "bad date", req: dto.RecordOccupancyRequest{Date: "03/01/2026", TotalRooms: 1}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := tt.req.ToModel("u1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRate, row.OccupancyRate)
		})
	}
}
