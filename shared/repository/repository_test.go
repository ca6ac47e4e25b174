package repository

import (
	"context"
	"testing"
	"vista/shared/dto"
	"vista/shared/model"

	"github.com/stretchr/testify/assert"
)

type stay struct {
	ID        string `db:"id"`
	RoomID    string `db:"room_id"`
	GuestName string `db:"guest_name" table:"guests" column:"name"`
	Floor     int    `db:"floor"      table:"rooms"`
	Ignored   string
	model.Metadata
}

func (stay) GetJoinQuery() string {
	return "JOIN guests ON guests.id = stays.guest_id JOIN rooms ON rooms.id = stays.room_id"
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository[stay]("stay", "stays", "id", nil, nil)

	assert.Equal(t,
		"INSERT INTO stays (id, room_id, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :room_id, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery)
	assert.Equal(t, "JOIN guests ON guests.id = stays.guest_id JOIN rooms ON rooms.id = stays.room_id", repo.join)
	assert.Equal(t,
		"stays.id, stays.room_id, guests.name AS guest_name, rooms.floor, "+
			"stays.created_at, stays.modified_at, stays.created_by, stays.modified_by",
		repo.selectList(nil))
	assert.Equal(t, "stays.id, guests.name AS guest_name", repo.selectList([]string{"id", "name"}))
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := NewRepository[stay]("stay", "stays", "id", nil, nil)

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "stays"}},
	})
	assert.Equal(t, " WHERE (stays.room_id = :room_id) ", where)
	assert.Equal(t, map[string]any{"room_id": "r-1"}, args)
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo := NewRepository[stay]("stay", "stays", "id", nil, nil)

	assert.ErrorIs(t, repo.Delete(context.Background(), dto.FilterGroup{}), ErrRequiredFilter)
	assert.ErrorIs(t, repo.Update(context.Background(), map[string]any{"room_id": "r-2"}, dto.FilterGroup{}), ErrRequiredFilter)
	assert.ErrorIs(t, repo.UpdateTx(context.Background(), nil, map[string]any{"room_id": "r-2"}, dto.FilterGroup{}), ErrRequiredFilter)
}
