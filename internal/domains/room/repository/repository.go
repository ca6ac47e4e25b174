package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/internal/domains/room/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/logger"
	gRepo "vista/shared/repository"
)

const countByTypeQuery = `SELECT room_type, COUNT(*) AS count
FROM rooms
WHERE status = $1
GROUP BY room_type
ORDER BY room_type`

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CountByType(ctx context.Context, status string) ([]model.TypeCount, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) CountByType(ctx context.Context, status string) ([]model.TypeCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CountByType")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, countByTypeQuery)

	counts := []model.TypeCount{}
	if err := repo.db.Read.SelectContext(ctx, &counts, countByTypeQuery, status); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count rooms by type: %w", err)
	}

	return counts, nil
}
