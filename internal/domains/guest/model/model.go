package model

import "vista/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID            = "id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldLoyaltyStatus = "loyalty_status"
)

type Guest struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	LoyaltyStatus string `db:"loyalty_status"`
	model.Metadata
}
