package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/internal/domains/analytics/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/logger"
	gRepo "vista/shared/repository"
)

// A recorded day replaces the figures already stored for that date; created_* columns are kept.
const (
	upsertOccupancyQuery = `INSERT INTO occupancy_data
	(id, date, rooms_occupied, total_rooms, occupancy_rate, created_at, modified_at, created_by, modified_by)
VALUES
	(:id, :date, :rooms_occupied, :total_rooms, :occupancy_rate, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (date) DO UPDATE SET
	rooms_occupied = EXCLUDED.rooms_occupied,
	total_rooms = EXCLUDED.total_rooms,
	occupancy_rate = EXCLUDED.occupancy_rate,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`

	upsertRevenueQuery = `INSERT INTO revenue_data
	(id, date, room_revenue, fnb_revenue, other_revenue, total_revenue, created_at, modified_at, created_by, modified_by)
VALUES
	(:id, :date, :room_revenue, :fnb_revenue, :other_revenue, :total_revenue, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (date) DO UPDATE SET
	room_revenue = EXCLUDED.room_revenue,
	fnb_revenue = EXCLUDED.fnb_revenue,
	other_revenue = EXCLUDED.other_revenue,
	total_revenue = EXCLUDED.total_revenue,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`
)

type Occupancy interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Occupancy, error)
	Upsert(ctx context.Context, row model.Occupancy) error
}

type Revenue interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Revenue, error)
	Upsert(ctx context.Context, row model.Revenue) error
}

type occupancyRepositoryImpl struct {
	gRepo.Repository[model.Occupancy]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOccupancy(db *postgres.Connection, otel otel.Otel) Occupancy {
	return &occupancyRepositoryImpl{
		Repository: gRepo.NewRepository[model.Occupancy](model.OccupancyEntityName, model.OccupancyTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *occupancyRepositoryImpl) Upsert(ctx context.Context, row model.Occupancy) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".occupancy.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertOccupancyQuery)

	if _, err := repo.db.Write.NamedExecContext(ctx, upsertOccupancyQuery, row); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert occupancy: %w", err)
	}

	return nil
}

type revenueRepositoryImpl struct {
	gRepo.Repository[model.Revenue]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRevenue(db *postgres.Connection, otel otel.Otel) Revenue {
	return &revenueRepositoryImpl{
		Repository: gRepo.NewRepository[model.Revenue](model.RevenueEntityName, model.RevenueTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *revenueRepositoryImpl) Upsert(ctx context.Context, row model.Revenue) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".revenue.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertRevenueQuery)

	if _, err := repo.db.Write.NamedExecContext(ctx, upsertRevenueQuery, row); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert revenue: %w", err)
	}

	return nil
}
