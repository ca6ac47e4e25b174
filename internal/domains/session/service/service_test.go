package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"vista/config"
	"vista/infras/otel/mocks"
	sessionMocks "vista/internal/domains/session/mocks"
	"vista/internal/domains/session/model"
	"vista/internal/domains/session/model/dto"
	"vista/internal/domains/session/service"
	"vista/shared/constant"
	"vista/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func sessionContext(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeySessionID, "sess-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "user-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func newService(ctrl *gomock.Controller, defaultPage string) (service.Session, *sessionMocks.MockSession) {
	mockRepo := sessionMocks.NewMockSession(ctrl)

	cfg := &config.Config{}
	cfg.App.DefaultPage = defaultPage

	return service.New(mockRepo, cfg, mocks.NewOtel()), mockRepo
}

func TestSessionService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newService(ctrl, constant.Empty)

	t.Run("defaults for a new session", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), "sess-1").Return(model.State{}, nil)

		res, err := svc.Get(sessionContext(constant.RoleFrontDesk))

		assert.NoError(t, err)
		assert.Equal(t, model.PageHome, res.Page)
		assert.False(t, res.ShowDateFilter)
		assert.NotEmpty(t, res.DateRange.StartDate)
		assert.NotEmpty(t, res.DateRange.EndDate)
	})

	t.Run("stored state", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), "sess-1").Return(model.State{SessionID: "sess-1", Page: model.PageOccupancy}, nil)

		res, err := svc.Get(sessionContext(constant.RoleFrontDesk))

		assert.NoError(t, err)
		assert.Equal(t, model.PageOccupancy, res.Page)
		assert.True(t, res.ShowDateFilter)
	})

	t.Run("missing session id", func(t *testing.T) {
		_, err := svc.Get(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), "sess-1").Return(model.State{}, errors.New("redis down"))

		_, err := svc.Get(sessionContext(constant.RoleFrontDesk))

		assert.Error(t, err)
	})
}

func TestSessionService_Navigate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newService(ctrl, model.PageLogs)

	tests := []struct {
		name       string
		role       string
		page       string
		wantPage   string
		wantFilter bool
	}{
		{name: "known page", role: constant.RoleFrontDesk, page: model.PageRoomStatus, wantPage: model.PageRoomStatus},
		{name: "date filter page", role: constant.RoleFrontDesk, page: model.PageDashboard, wantPage: model.PageDashboard, wantFilter: true},
		{name: "unknown page falls back", role: constant.RoleFrontDesk, page: "billing", wantPage: model.PageLogs},
		{name: "hidden page falls back", role: constant.RoleHousekeeping, page: model.PageRevenue, wantPage: model.PageLogs},
		{name: "manager sees revenue", role: constant.RoleManager, page: model.PageRevenue, wantPage: model.PageRevenue, wantFilter: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().
				Get(gomock.Any(), "sess-1").
				Return(model.State{SessionID: "sess-1", Page: model.PageMessaging, ActiveThreadID: "thread-1"}, nil)

			mockRepo.EXPECT().
				Save(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, state model.State) error {
					assert.Equal(t, tt.wantPage, state.Page)
					assert.Empty(t, state.ActiveThreadID)
					assert.False(t, state.UpdatedAt.IsZero())

					return nil
				})

			res, err := svc.Navigate(sessionContext(tt.role), dto.NavigateRequest{Page: tt.page})

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPage, res.Page)
			assert.Equal(t, tt.wantFilter, res.ShowDateFilter)
		})
	}
}

func TestSessionService_SetDateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newService(ctrl, constant.Empty)

	t.Run("inverted range is normalized", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), "sess-1").Return(model.State{SessionID: "sess-1", Page: model.PageHome}, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.SetDateRange(sessionContext(constant.RoleManager), dto.DateRangeRequest{StartDate: "2024-03-20", EndDate: "2024-03-10"})

		assert.NoError(t, err)
		assert.Equal(t, "2024-03-09", res.DateRange.StartDate)
		assert.Equal(t, "2024-03-10", res.DateRange.EndDate)
	})

	t.Run("unknown preset", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), "sess-1").Return(model.State{SessionID: "sess-1"}, nil)

		_, err := svc.SetDateRange(sessionContext(constant.RoleManager), dto.DateRangeRequest{Preset: "forever"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSessionService_SetContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newService(ctrl, constant.Empty)

	thread := "thread-9"
	cleared := constant.Empty

	mockRepo.EXPECT().
		Get(gomock.Any(), "sess-1").
		Return(model.State{SessionID: "sess-1", Page: model.PageMessaging, ViewProfileID: "p2", SelectedProperty: "Downtown"}, nil)
	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.SetContext(sessionContext(constant.RoleSales), dto.ContextRequest{ActiveThreadID: &thread, ViewProfileID: &cleared})

	assert.NoError(t, err)
	assert.Equal(t, "thread-9", res.ActiveThreadID)
	assert.Empty(t, res.ViewProfileID)
	assert.Equal(t, "Downtown", res.SelectedProperty)
}

func TestSessionService_Pages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(ctrl, constant.Empty)

	keys := func(pages []dto.PageResponse) []string {
		res := make([]string, len(pages))
		for i, p := range pages {
			res[i] = p.Key
		}

		return res
	}

	manager := keys(svc.Pages(sessionContext(constant.RoleManager)))
	housekeeping := keys(svc.Pages(sessionContext(constant.RoleHousekeeping)))

	assert.Len(t, manager, len(model.Pages))
	assert.Contains(t, manager, model.PageReports)
	assert.NotContains(t, housekeeping, model.PageRevenue)
	assert.NotContains(t, housekeeping, model.PageReports)
	assert.Equal(t, model.PageHome, housekeeping[0])
}

func TestSessionService_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newService(ctrl, constant.Empty)

	mockRepo.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)

	assert.NoError(t, svc.Clear(context.Background(), "sess-1"))
}
