package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/internal/domains/booking/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/logger"
	gRepo "vista/shared/repository"
)

// The status guard makes concurrent check-ins of the same booking resolve to a single winner.
const transitionQuery = `UPDATE bookings
SET status = $1, modified_at = $2, modified_by = $3
WHERE id = $4 AND status = $5`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// Transition moves a booking from one status to another and reports whether a row changed.
	Transition(ctx context.Context, id, from, to, user string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Transition(ctx context.Context, id, from, to, user string, at time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, transitionQuery)

	result, err := repo.db.Write.ExecContext(ctx, transitionQuery, to, at, user, id, from)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to transition booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
