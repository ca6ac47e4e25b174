package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	"vista/config"
	"vista/infras/otel/mocks"
	analyticsMocks "vista/internal/domains/analytics/mocks"
	"vista/internal/domains/analytics/model"
	"vista/internal/domains/analytics/model/dto"
	"vista/internal/domains/analytics/service"
	bookingMocks "vista/internal/domains/booking/mocks"
	bookingModel "vista/internal/domains/booking/model"
	cacheMocks "vista/shared/cache/mocks"
	"vista/shared/constant"
	"vista/shared/daterange"
	"vista/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc           service.Analytics
	occupancyRepo *analyticsMocks.MockOccupancy
	revenueRepo   *analyticsMocks.MockRevenue
	bookingRepo   *bookingMocks.MockBooking
	cache         *cacheMocks.MockRedisCache
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		occupancyRepo: analyticsMocks.NewMockOccupancy(ctrl),
		revenueRepo:   analyticsMocks.NewMockRevenue(ctrl),
		bookingRepo:   bookingMocks.NewMockBooking(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.occupancyRepo, f.revenueRepo, f.bookingRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func march() daterange.Range {
	return daterange.Range{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestAnalyticsService_KPIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))

	gomock.InOrder(
		f.occupancyRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Occupancy{{RoomsOccupied: 40, TotalRooms: 50, OccupancyRate: 80}}, nil),
		f.occupancyRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Occupancy{{RoomsOccupied: 20, TotalRooms: 50, OccupancyRate: 40}}, nil),
	)

	gomock.InOrder(
		f.revenueRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Revenue{{RoomRevenue: 1000, FnbRevenue: 300, OtherRevenue: 100, TotalRevenue: 1400}}, nil),
		f.revenueRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Revenue{}, nil),
	)

	checkIn := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{CheckInDate: checkIn, CheckOutDate: checkIn.AddDate(0, 0, 2)},
				{CheckInDate: checkIn, CheckOutDate: checkIn.AddDate(0, 0, 4)},
			}, nil),
		f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil),
	)

	res, err := f.svc.KPIs(context.Background(), march())

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 80.0, res.Current.OccupancyRate)
	assert.Equal(t, 1400.0, res.Current.TotalRevenue)
	assert.Equal(t, 25.0, res.Current.ADR)
	assert.Equal(t, 20.0, res.Current.RevPAR)
	assert.Equal(t, 2, res.Current.Bookings)
	assert.Equal(t, 3.0, res.Current.AvgLengthOfStay)
	assert.Equal(t, 100.0, res.Change.OccupancyRate)
	assert.Equal(t, 0.0, res.Change.TotalRevenue)
	assert.Equal(t, "2026-01-29", res.PreviousPeriod.StartDate)
	assert.Equal(t, "2026-02-28", res.PreviousPeriod.EndDate)
}

func TestAnalyticsService_KPIs_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.cache.EXPECT().Get(gomock.Any(), "analytics:kpis:2026-03-01_2026-03-31", gomock.Any()).Return(nil)

	_, err := f.svc.KPIs(context.Background(), march())

	assert.NoError(t, err)
}

func TestAnalyticsService_RecordRevenue(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RecordRevenueRequest
		setupMock func(f fixture)
		wantTotal float64
		wantCode  int
	}{
		{
			name: "total is the sum of categories",
			req:  dto.RecordRevenueRequest{Date: "2026-03-01", RoomRevenue: 1000, FnbRevenue: 300, OtherRevenue: 100},
			setupMock: func(f fixture) {
				f.revenueRepo.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, row model.Revenue) error {
						assert.Equal(t, 1400.0, row.TotalRevenue)
						assert.Equal(t, "manager", row.ModifiedBy)

						return nil
					})
			},
			wantTotal: 1400,
		},
		{
			name:      "negative amount",
			req:       dto.RecordRevenueRequest{Date: "2026-03-01", RoomRevenue: -1},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "store failure",
			req:  dto.RecordRevenueRequest{Date: "2026-03-01", RoomRevenue: 10},
			setupMock: func(f fixture) {
				f.revenueRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "manager")

			res, err := f.svc.RecordRevenue(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalRevenue)
		})
	}
}

func TestAnalyticsService_RecordOccupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.occupancyRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.RecordOccupancy(context.Background(), dto.RecordOccupancyRequest{
		Date:          "2026-03-01",
		RoomsOccupied: 30,
		TotalRooms:    40,
	})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 75.0, res.OccupancyRate)
	assert.Equal(t, 10, res.VacantRooms)
}

func TestAnalyticsService_Revenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.revenueRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Revenue{{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), RoomRevenue: 800, FnbRevenue: 200, TotalRevenue: 1000}}, nil)

	res, err := f.svc.Revenue(context.Background(), march())

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, res.Totals.Total)
	assert.InDelta(t, 80.0, res.Mix.Room, 0.0001)
	assert.Nil(t, res.Trend)
	assert.Len(t, res.Days, 1)
}
