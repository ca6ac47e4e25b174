package service

import (
	"context"
	"fmt"
	"vista/config"
	"vista/infras/otel"
	"vista/internal/domains/session/model"
	"vista/internal/domains/session/model/dto"
	"vista/internal/domains/session/repository"
	"vista/shared/constant"
	"vista/shared/daterange"
	"vista/shared/failure"
	"vista/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Session interface {
	Get(ctx context.Context) (dto.StateResponse, error)
	Navigate(ctx context.Context, req dto.NavigateRequest) (dto.StateResponse, error)
	SetDateRange(ctx context.Context, req dto.DateRangeRequest) (dto.StateResponse, error)
	SetContext(ctx context.Context, req dto.ContextRequest) (dto.StateResponse, error)
	Pages(ctx context.Context) []dto.PageResponse
	Clear(ctx context.Context, sessionID string) error
}

type serviceImpl struct {
	repo repository.Session
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Session, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.StateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(state)

	return res, nil
}

func (s *serviceImpl) Navigate(ctx context.Context, req dto.NavigateRequest) (res dto.StateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Navigate")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	state.Page = s.resolvePage(req.Page, role)

	if state.Page != model.PageMessaging {
		state.ActiveThreadID = constant.Empty
	}

	if state.Page != model.PageProfile && state.Page != model.PageTeam {
		state.ViewProfileID = constant.Empty
	}

	if err = s.save(ctx, state); err != nil {
		return res, err
	}

	res.FromModel(state)

	return res, nil
}

func (s *serviceImpl) SetDateRange(ctx context.Context, req dto.DateRangeRequest) (res dto.StateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	period, err := daterange.Resolve(req.Preset, req.StartDate, req.EndDate, timezone.Now())
	if err != nil {
		return res, err
	}

	state.Preset = req.Preset
	state.StartDate = period.StartString()
	state.EndDate = period.EndString()

	if err = s.save(ctx, state); err != nil {
		return res, err
	}

	res.FromModel(state)

	return res, nil
}

func (s *serviceImpl) SetContext(ctx context.Context, req dto.ContextRequest) (res dto.StateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetContext")
	defer scope.End()
	defer scope.TraceIfError(err)

	state, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	if req.ActiveThreadID != nil {
		state.ActiveThreadID = *req.ActiveThreadID
	}

	if req.ViewProfileID != nil {
		state.ViewProfileID = *req.ViewProfileID
	}

	if req.SelectedProperty != nil {
		state.SelectedProperty = *req.SelectedProperty
	}

	if err = s.save(ctx, state); err != nil {
		return res, err
	}

	res.FromModel(state)

	return res, nil
}

func (s *serviceImpl) Pages(ctx context.Context) []dto.PageResponse {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	res := make([]dto.PageResponse, 0, len(model.Pages))

	for _, page := range model.Pages {
		if !page.VisibleTo(role) {
			continue
		}

		item := dto.PageResponse{}
		item.FromModel(page)
		res = append(res, item)
	}

	return res
}

func (s *serviceImpl) Clear(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear session")

		return err
	}

	return nil
}

// load returns the stored state, or the defaults for a session that has none yet.
func (s *serviceImpl) load(ctx context.Context) (model.State, error) {
	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)
	if sessionID == constant.Empty {
		return model.State{}, failure.Unauthorized("session not found")
	}

	state, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")

		return model.State{}, fmt.Errorf("failed to load session: %w", err)
	}

	if state.SessionID != constant.Empty {
		return state, nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	period := daterange.Default(timezone.Now())

	return model.State{
		SessionID: sessionID,
		UserID:    user,
		Page:      s.defaultPage(),
		StartDate: period.StartString(),
		EndDate:   period.EndString(),
	}, nil
}

func (s *serviceImpl) save(ctx context.Context, state model.State) error {
	state.UpdatedAt = timezone.Now()

	if err := s.repo.Save(ctx, state); err != nil {
		log.Error().Err(err).Str("session_id", state.SessionID).Msg("failed to save session")

		return err
	}

	return nil
}

func (s *serviceImpl) defaultPage() string {
	if _, ok := model.Lookup(s.cfg.App.DefaultPage); ok {
		return s.cfg.App.DefaultPage
	}

	return model.PageHome
}

// resolvePage falls back to the default page for unknown or hidden pages.
func (s *serviceImpl) resolvePage(key, role string) string {
	page, ok := model.Lookup(key)
	if !ok || !page.VisibleTo(role) {
		return s.defaultPage()
	}

	return page.Key
}
