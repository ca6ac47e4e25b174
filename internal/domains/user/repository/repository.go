package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/internal/domains/user/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	gRepo "vista/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Attach writes rows that must exist together with a new account.
type Attach func(ctx context.Context, tx *sqlx.Tx) error

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// Register inserts the account and runs attach in one transaction.
	Register(ctx context.Context, user model.User, attach Attach) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Register(ctx context.Context, user model.User, attach Attach) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Register")
	defer scope.End()

	err := gRepo.Transaction(ctx, repo.db, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}

		return attach(ctx, tx)
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}
