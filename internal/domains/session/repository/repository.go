package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"vista/config"
	"vista/internal/domains/session/model"
	"vista/shared"
	"vista/shared/cache"
)

const cacheSession = "session:state"

type Session interface {
	Get(ctx context.Context, sessionID string) (model.State, error)
	Save(ctx context.Context, state model.State) error
	Delete(ctx context.Context, sessionID string) error
}

type repositoryImpl struct {
	cache cache.RedisCache
	cfg   *config.Config
}

func New(cache cache.RedisCache, cfg *config.Config) Session {
	return &repositoryImpl{
		cache: cache,
		cfg:   cfg,
	}
}

// Get returns a zero State when the session has nothing stored yet.
func (r *repositoryImpl) Get(ctx context.Context, sessionID string) (model.State, error) {
	var state model.State

	err := r.cache.Get(ctx, shared.BuildCacheKey(cacheSession, sessionID), &state)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return model.State{}, nil
		}

		return model.State{}, fmt.Errorf("failed to get %s: %w", model.EntityName, err)
	}

	return state, nil
}

func (r *repositoryImpl) Save(ctx context.Context, state model.State) error {
	if err := r.cache.Save(ctx, shared.BuildCacheKey(cacheSession, state.SessionID), state, r.cfg.Session.TTL); err != nil {
		return fmt.Errorf("failed to save %s: %w", model.EntityName, err)
	}

	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, shared.BuildCacheKey(cacheSession, sessionID)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", model.EntityName, err)
	}

	return nil
}
