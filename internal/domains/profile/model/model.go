package model

import (
	"strings"
	"time"
	"vista/shared/model"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID         = "id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldRole       = "role"
	FieldAvatarURL  = "avatar_url"
	FieldLastActive = "last_active"
)

type Profile struct {
	ID         string     `db:"id"`
	FirstName  string     `db:"first_name"`
	LastName   string     `db:"last_name"`
	Email      string     `db:"email"`
	Phone      string     `db:"phone"`
	Role       string     `db:"role"`
	Bio        string     `db:"bio"`
	AvatarURL  string     `db:"avatar_url"`
	LastActive *time.Time `db:"last_active"`
	model.Metadata
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
