package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/internal/domains/messaging/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/logger"
	gRepo "vista/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const latestMessagesQuery = `
SELECT DISTINCT ON (messages.thread_id)
	messages.id, messages.thread_id, messages.sender_id, messages.content,
	profiles.first_name AS sender_first_name, profiles.last_name AS sender_last_name,
	messages.created_at, messages.modified_at, messages.created_by, messages.modified_by
FROM messages
JOIN profiles ON profiles.id = messages.sender_id
WHERE messages.thread_id = ANY($1)
ORDER BY messages.thread_id, messages.created_at DESC`

type Thread interface {
	// Open stores a new thread, its participants and the optional first message in one transaction.
	Open(ctx context.Context, thread model.Thread, participants []model.Participant, first *model.Message) error
	// Append stores a message and moves its thread's last_message_time in one transaction.
	Append(ctx context.Context, message model.Message) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Thread, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Thread, error)
}

type Participant interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Participant, error)
}

type Message interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Message, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Latest(ctx context.Context, threadIDs []string) ([]model.Message, error)
}

type threadRepositoryImpl struct {
	gRepo.Repository[model.Thread]
	participants gRepo.Repository[model.Participant]
	messages     gRepo.Repository[model.Message]
	db           *postgres.Connection
	otel         otel.Otel
}

func NewThread(db *postgres.Connection, otel otel.Otel) Thread {
	return &threadRepositoryImpl{
		Repository:   gRepo.NewRepository[model.Thread](model.ThreadEntityName, model.ThreadTableName, model.FieldID, db, otel),
		participants: gRepo.NewRepository[model.Participant](model.ParticipantEntityName, model.ParticipantTableName, model.FieldThreadID, db, otel),
		messages:     gRepo.NewRepository[model.Message](model.MessageEntityName, model.MessageTableName, model.FieldID, db, otel),
		db:           db,
		otel:         otel,
	}
}

func (repo *threadRepositoryImpl) Open(ctx context.Context, thread model.Thread, participants []model.Participant, first *model.Message) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".thread.Open")
	defer scope.End()

	err := gRepo.Transaction(ctx, repo.db, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, thread); err != nil {
			return err
		}

		if err := repo.participants.InsertBulkTx(ctx, tx, participants); err != nil {
			return err
		}

		if first == nil {
			return nil
		}

		return repo.messages.InsertTx(ctx, tx, *first)
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to open thread: %w", err)
	}

	return nil
}

func (repo *threadRepositoryImpl) Append(ctx context.Context, message model.Message) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".thread.Append")
	defer scope.End()

	update := map[string]any{
		model.FieldLastMessageTime: message.CreatedAt,
		constant.FieldModifiedAt:   message.CreatedAt,
		constant.FieldModifiedBy:   message.SenderID,
	}

	err := gRepo.Transaction(ctx, repo.db, func(tx *sqlx.Tx) error {
		if err := repo.messages.InsertTx(ctx, tx, message); err != nil {
			return err
		}

		return repo.UpdateTx(ctx, tx, update, gDto.FilterGroup{
			Filters: []any{gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    message.ThreadID,
				Table:    model.ThreadTableName,
			}},
		})
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to append message: %w", err)
	}

	return nil
}

type participantRepositoryImpl struct {
	gRepo.Repository[model.Participant]
}

func NewParticipant(db *postgres.Connection, otel otel.Otel) Participant {
	return &participantRepositoryImpl{
		Repository: gRepo.NewRepository[model.Participant](model.ParticipantEntityName, model.ParticipantTableName, model.FieldThreadID, db, otel),
	}
}

type messageRepositoryImpl struct {
	gRepo.Repository[model.Message]
	db   *postgres.Connection
	otel otel.Otel
}

func NewMessage(db *postgres.Connection, otel otel.Otel) Message {
	return &messageRepositoryImpl{
		Repository: gRepo.NewRepository[model.Message](model.MessageEntityName, model.MessageTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Latest returns the newest message of every given thread, at most one per thread.
func (repo *messageRepositoryImpl) Latest(ctx context.Context, threadIDs []string) ([]model.Message, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".message.Latest")
	defer scope.End()

	messages := []model.Message{}
	if len(threadIDs) == 0 {
		return messages, nil
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, latestMessagesQuery)

	if err := repo.db.Read.SelectContext(ctx, &messages, latestMessagesQuery, pq.Array(threadIDs)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return messages, fmt.Errorf("failed to get latest messages: %w", err)
	}

	return messages, nil
}
