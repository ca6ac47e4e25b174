package service_test

import (
	"context"
	"errors"
	"testing"
	"vista/infras/otel/mocks"
	analyticsDto "vista/internal/domains/analytics/model/dto"
	analyticsMocks "vista/internal/domains/analytics/service/mocks"
	bookingDto "vista/internal/domains/booking/model/dto"
	bookingMocks "vista/internal/domains/booking/service/mocks"
	"vista/internal/domains/home/model/dto"
	"vista/internal/domains/home/service"
	roomModel "vista/internal/domains/room/model"
	roomDto "vista/internal/domains/room/model/dto"
	roomMocks "vista/internal/domains/room/service/mocks"
	logDto "vista/internal/domains/shiftlog/model/dto"
	logMocks "vista/internal/domains/shiftlog/service/mocks"
	"vista/shared/constant"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc              service.Home
	bookingService   *bookingMocks.MockBooking
	roomService      *roomMocks.MockRoom
	logService       *logMocks.MockLog
	analyticsService *analyticsMocks.MockAnalytics
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		bookingService:   bookingMocks.NewMockBooking(ctrl),
		roomService:      roomMocks.NewMockRoom(ctrl),
		logService:       logMocks.NewMockLog(ctrl),
		analyticsService: analyticsMocks.NewMockAnalytics(ctrl),
	}

	f.svc = service.New(f.bookingService, f.roomService, f.logService, f.analyticsService, mocks.NewOtel())

	return f
}

func (f fixture) expectCommon() {
	f.bookingService.EXPECT().Today(gomock.Any()).Return(bookingDto.TodayResponse{
		Arrivals:   []bookingDto.BookingResponse{{ID: "a1"}, {ID: "a2"}},
		Departures: []bookingDto.BookingResponse{{ID: "d1"}},
	}, nil)
	f.roomService.EXPECT().Summary(gomock.Any()).Return(roomDto.SummaryResponse{
		TotalRooms: 8,
		Statuses: []roomDto.StatusCount{
			{Status: roomModel.StatusVacant, Count: 2},
			{Status: roomModel.StatusOccupied, Count: 6},
		},
	}, nil)
	f.logService.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(logDto.GetLogsResponse{
		Logs: []logDto.LogResponse{{ID: "l1", IsRead: true}, {ID: "l2"}, {ID: "l3"}},
	}, nil)
}

func roleContext(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestHomeService_Overview(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		setupMock   func(f fixture)
		wantSection string
		wantLogs    bool
	}{
		{
			name: "manager gets kpi snapshot",
			role: constant.RoleManager,
			setupMock: func(f fixture) {
				f.analyticsService.EXPECT().KPIs(gomock.Any(), gomock.Any()).Return(analyticsDto.KPIResponse{}, nil)
			},
			wantSection: dto.SectionKPI,
			wantLogs:    true,
		},
		{
			name:        "front desk gets arrivals",
			role:        constant.RoleFrontDesk,
			setupMock:   func(f fixture) {},
			wantSection: dto.SectionFrontDesk,
			wantLogs:    true,
		},
		{
			name: "housekeeping gets dirty rooms",
			role: constant.RoleHousekeeping,
			setupMock: func(f fixture) {
				f.roomService.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(roomDto.GetRoomsResponse{
					Rooms: []roomDto.RoomResponse{
						{ID: "r1", Status: roomModel.StatusDirty},
						{ID: "r2", Status: roomModel.StatusVacant},
					},
				}, nil)
			},
			wantSection: dto.SectionHousekeeping,
		},
		{
			name: "maintenance gets out of service rooms",
			role: constant.RoleMaintenance,
			setupMock: func(f fixture) {
				f.roomService.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(roomDto.GetRoomsResponse{
					Rooms: []roomDto.RoomResponse{
						{ID: "r1", Status: roomModel.StatusMaintenance},
						{ID: "r2", Status: roomModel.StatusOutOfOrder},
						{ID: "r3", Status: roomModel.StatusDirty},
					},
				}, nil)
			},
			wantSection: dto.SectionMaintenance,
		},
		{
			name:      "sales gets no section",
			role:      constant.RoleSales,
			setupMock: func(f fixture) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.expectCommon()
			tt.setupMock(f)

			res, err := f.svc.Overview(roleContext(tt.role))

			assert.NoError(t, err)
			assert.Equal(t, 2, res.Metrics.CheckInsToday)
			assert.Equal(t, 1, res.Metrics.CheckOutsToday)
			assert.Equal(t, 2, res.Metrics.RoomsAvailable)
			assert.Equal(t, 25.0, res.Metrics.VacancyRate)
			assert.Equal(t, 2, res.Metrics.UnreadLogs)
			assert.Equal(t, tt.wantLogs, len(res.RecentLogs) > 0)

			if tt.wantSection == "" {
				assert.Nil(t, res.Section)

				return
			}

			assert.Equal(t, tt.wantSection, res.Section.Kind)

			switch tt.wantSection {
			case dto.SectionHousekeeping:
				assert.Len(t, res.Section.Rooms, 1)
			case dto.SectionMaintenance:
				assert.Len(t, res.Section.Rooms, 2)
			case dto.SectionFrontDesk:
				assert.Len(t, res.Section.Arrivals, 2)
			}
		})
	}
}

func TestHomeService_Overview_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.bookingService.EXPECT().Today(gomock.Any()).Return(bookingDto.TodayResponse{}, errors.New("db down"))

	_, err := f.svc.Overview(roleContext(constant.RoleManager))

	assert.Error(t, err)
}
