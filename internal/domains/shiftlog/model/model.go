package model

import (
	"slices"
	"vista/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "logs"
	EntityName = "log"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldMessage    = "message"
	FieldAuthorID   = "author_id"
	FieldAuthorName = "author_name"
	FieldAuthorRole = "author_role"
	FieldReadBy     = "read_by"
)

const (
	WindowToday     = "today"
	WindowLast3Days = "last_3_days"
	WindowLastWeek  = "last_week"
	WindowLastMonth = "last_month"
)

type Log struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	Message    string         `db:"message"`
	AuthorID   string         `db:"author_id"`
	AuthorName string         `db:"author_name"`
	AuthorRole string         `db:"author_role"`
	ReadBy     pq.StringArray `db:"read_by"`
	model.Metadata
}

func (l Log) IsReadBy(userID string) bool {
	return slices.Contains(l.ReadBy, userID)
}
