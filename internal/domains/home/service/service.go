package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"slices"
	"vista/infras/otel"
	analyticsService "vista/internal/domains/analytics/service"
	bookingDto "vista/internal/domains/booking/model/dto"
	bookingService "vista/internal/domains/booking/service"
	"vista/internal/domains/home/model/dto"
	roomModel "vista/internal/domains/room/model"
	roomDto "vista/internal/domains/room/model/dto"
	roomService "vista/internal/domains/room/service"
	logDto "vista/internal/domains/shiftlog/model/dto"
	logService "vista/internal/domains/shiftlog/service"
	"vista/shared/constant"
	"vista/shared/daterange"
	gDto "vista/shared/dto"
	"vista/shared/timezone"
)

const recentLogLimit = 5

type Home interface {
	Overview(ctx context.Context) (dto.OverviewResponse, error)
}

type serviceImpl struct {
	bookingService   bookingService.Booking
	roomService      roomService.Room
	logService       logService.Log
	analyticsService analyticsService.Analytics
	otel             otel.Otel
}

func New(
	bookingService bookingService.Booking,
	roomService roomService.Room,
	logService logService.Log,
	analyticsService analyticsService.Analytics,
	otel otel.Otel,
) Home {
	return &serviceImpl{
		bookingService:   bookingService,
		roomService:      roomService,
		logService:       logService,
		analyticsService: analyticsService,
		otel:             otel,
	}
}

// Overview assembles the landing page for the caller's role.
func (s *serviceImpl) Overview(ctx context.Context) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Overview")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	res.Role = role

	today, err := s.bookingService.Today(ctx)
	if err != nil {
		return res, err
	}

	summary, err := s.roomService.Summary(ctx)
	if err != nil {
		return res, err
	}

	logs, err := s.logService.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: recentLogLimit}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	})
	if err != nil {
		return res, err
	}

	res.Metrics = metrics(today.Arrivals, today.Departures, summary, logs.Logs)

	if role == constant.RoleManager || role == constant.RoleFrontDesk {
		res.RecentLogs = logs.Logs
	}

	switch role {
	case constant.RoleManager:
		period, _ := daterange.FromPreset(daterange.PresetThisMonth, timezone.Now())

		kpis, err := s.analyticsService.KPIs(ctx, period)
		if err != nil {
			return res, err
		}

		res.Section = &dto.SectionResponse{Kind: dto.SectionKPI, KPIs: &kpis}
	case constant.RoleFrontDesk:
		res.Section = &dto.SectionResponse{
			Kind:       dto.SectionFrontDesk,
			Arrivals:   today.Arrivals,
			Departures: today.Departures,
		}
	case constant.RoleHousekeeping:
		rooms, err := s.rooms(ctx, roomModel.StatusDirty)
		if err != nil {
			return res, err
		}

		res.Section = &dto.SectionResponse{Kind: dto.SectionHousekeeping, Rooms: rooms}
	case constant.RoleMaintenance:
		rooms, err := s.rooms(ctx, roomModel.StatusMaintenance, roomModel.StatusOutOfOrder)
		if err != nil {
			return res, err
		}

		res.Section = &dto.SectionResponse{Kind: dto.SectionMaintenance, Rooms: rooms}
	}

	return res, nil
}

// rooms lists the rooms in any of the given statuses.
func (s *serviceImpl) rooms(ctx context.Context, statuses ...string) ([]roomDto.RoomResponse, error) {
	all, err := s.roomService.GetAll(ctx, roomDto.ListFilter{})
	if err != nil {
		return nil, err
	}

	rooms := []roomDto.RoomResponse{}

	for _, room := range all.Rooms {
		if slices.Contains(statuses, room.Status) {
			rooms = append(rooms, room)
		}
	}

	return rooms, nil
}

func metrics(arrivals, departures []bookingDto.BookingResponse, summary roomDto.SummaryResponse, logs []logDto.LogResponse) dto.MetricsResponse {
	res := dto.MetricsResponse{
		CheckInsToday:  len(arrivals),
		CheckOutsToday: len(departures),
		RoomsAvailable: summary.Count(roomModel.StatusVacant),
	}

	if summary.TotalRooms > 0 {
		res.VacancyRate = float64(res.RoomsAvailable) / float64(summary.TotalRooms) * constant.Percent
	}

	for _, entry := range logs {
		if !entry.IsRead {
			res.UnreadLogs++
		}
	}

	return res
}
