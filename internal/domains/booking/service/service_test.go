package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	"vista/config"
	"vista/infras/otel/mocks"
	bookingMocks "vista/internal/domains/booking/mocks"
	"vista/internal/domains/booking/model"
	"vista/internal/domains/booking/model/dto"
	"vista/internal/domains/booking/service"
	guestMocks "vista/internal/domains/guest/mocks"
	roomModel "vista/internal/domains/room/model"
	roomDto "vista/internal/domains/room/model/dto"
	roomMocks "vista/internal/domains/room/service/mocks"
	cacheMocks "vista/shared/cache/mocks"
	"vista/shared/constant"
	"vista/shared/daterange"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc         service.Booking
	repo        *bookingMocks.MockBooking
	guestRepo   *guestMocks.MockGuest
	roomService *roomMocks.MockRoom
	cache       *cacheMocks.MockRedisCache
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := newBareFixture(ctrl)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// newBareFixture leaves every cache call unexpected.
func newBareFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		repo:        bookingMocks.NewMockBooking(ctrl),
		guestRepo:   guestMocks.NewMockGuest(ctrl),
		roomService: roomMocks.NewMockRoom(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.guestRepo, f.roomService, cfg, f.cache, mocks.NewOtel())

	return f
}

func callerContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestBookingService_Create(t *testing.T) {
	valid := dto.CreateBookingRequest{
		GuestID:      "g1",
		RoomID:       "r1",
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-13",
		TotalPrice:   450,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "reserved with nights",
			req:  valid,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().Get(gomock.Any(), "r1").Return(roomDto.RoomResponse{ID: "r1", RoomNumber: "305"}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusReserved, booking.Status)
						assert.Equal(t, 3, booking.Nights)
						assert.Equal(t, "u1", booking.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "check-out before check-in",
			req: dto.CreateBookingRequest{
				GuestID:      "g1",
				RoomID:       "r1",
				CheckInDate:  "2026-03-10",
				CheckOutDate: "2026-03-10",
			},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown guest",
			req:  valid,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  valid,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().Get(gomock.Any(), "r1").Return(roomDto.RoomResponse{}, failure.NotFound("room not found"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "insert failure",
			req:  valid,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().Get(gomock.Any(), "r1").Return(roomDto.RoomResponse{ID: "r1"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
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

			res, err := f.svc.Create(callerContext("u1"), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "305", res.RoomNumber)
			assert.Equal(t, "2026-03-13", res.CheckOutDate)
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "reserved guest checks in",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusReserved}, nil)
				f.repo.EXPECT().
					Transition(gomock.Any(), "b1", model.StatusReserved, model.StatusCheckedIn, "u1", gomock.Any()).
					Return(true, nil)
				f.roomService.EXPECT().
					UpdateStatus(gomock.Any(), "r1", roomDto.UpdateStatusRequest{Status: roomModel.StatusOccupied}).
					Return(roomDto.RoomResponse{}, nil)
			},
		},
		{
			name: "checked in by another request",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusReserved}, nil)
				f.repo.EXPECT().
					Transition(gomock.Any(), "b1", model.StatusReserved, model.StatusCheckedIn, "u1", gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "already checked out",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusCheckedOut}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing booking",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.CheckIn(callerContext("u1"), "b1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusCheckedIn, res.Status)
			assert.Equal(t, "u1", res.ModifiedBy)
		})
	}
}

func TestBookingService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusCheckedIn}, nil)
	f.repo.EXPECT().
		Transition(gomock.Any(), "b1", model.StatusCheckedIn, model.StatusCheckedOut, "u1", gomock.Any()).
		Return(true, nil)
	f.roomService.EXPECT().
		UpdateStatus(gomock.Any(), "r1", roomDto.UpdateStatusRequest{Status: roomModel.StatusDirty}).
		Return(roomDto.RoomResponse{}, nil)

	res, err := f.svc.CheckOut(callerContext("u1"), "b1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, res.Status)
}

func TestBookingService_InvalidatesAnalytics(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		call      func(svc service.Booking) error
	}{
		{
			name: "create",
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().Get(gomock.Any(), "r1").Return(roomDto.RoomResponse{ID: "r1"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			call: func(svc service.Booking) error {
				_, err := svc.Create(callerContext("u1"), dto.CreateBookingRequest{
					GuestID: "g1", RoomID: "r1", CheckInDate: "2026-03-10", CheckOutDate: "2026-03-11",
				})

				return err
			},
		},
		{
			name: "check in",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusReserved}, nil)
				f.repo.EXPECT().Transition(gomock.Any(), "b1", gomock.Any(), gomock.Any(), "u1", gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().UpdateStatus(gomock.Any(), "r1", gomock.Any()).Return(roomDto.RoomResponse{}, nil)
			},
			call: func(svc service.Booking) error {
				_, err := svc.CheckIn(callerContext("u1"), "b1")

				return err
			},
		},
		{
			name: "check out",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b1", RoomID: "r1", Status: model.StatusCheckedIn}, nil)
				f.repo.EXPECT().Transition(gomock.Any(), "b1", gomock.Any(), gomock.Any(), "u1", gomock.Any()).Return(true, nil)
				f.roomService.EXPECT().UpdateStatus(gomock.Any(), "r1", gomock.Any()).Return(roomDto.RoomResponse{}, nil)
			},
			call: func(svc service.Booking) error {
				_, err := svc.CheckOut(callerContext("u1"), "b1")

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBareFixture(ctrl)
			tt.setupMock(f)

			cleared := make(chan string, 8)

			f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			f.cache.EXPECT().
				Clear(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, pattern string) error {
					cleared <- pattern

					return nil
				}).
				Times(3)

			assert.NoError(t, tt.call(f.svc))

			patterns := []string{}
			for range 3 {
				select {
				case pattern := <-cleared:
					patterns = append(patterns, pattern)
				case <-time.After(time.Second):
					t.Fatal("cache was not cleared")
				}
			}

			assert.Contains(t, patterns, constant.CacheAnalytics+constant.Asterix)
		})
	}
}

func TestBookingService_Today(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	gomock.InOrder(
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "a1", Status: model.StatusReserved}}, nil),
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "d1", Status: model.StatusCheckedIn}, {ID: "d2", Status: model.StatusCheckedOut}}, nil),
	)

	res, err := f.svc.Today(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.Arrivals, 1)
	assert.Len(t, res.Departures, 2)
	assert.NotEmpty(t, res.Date)
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	period, _ := daterange.Parse("2026-03-01", "2026-03-31", time.Now())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{{ID: "b1"}, {ID: "b2"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{Period: period})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Bookings, 2)
}
