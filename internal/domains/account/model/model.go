package model

import "chicstation/shared/model"

const (
	TableName  = "accounts"
	EntityName = "account"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldPhoneNumber  = "phone_number"
	FieldAddress      = "address"
	FieldProfileImage = "profile_image"
	FieldRole         = "role"
	FieldActive       = "active"
	FieldLastLogin    = "last_login"
)

type Account struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	PhoneNumber  string  `db:"phone_number"`
	Address      *string `db:"address"`
	ProfileImage *string `db:"profile_image"`
	Role         string  `db:"role"`
	Active       bool    `db:"active"`
	LastLogin    *string `db:"last_login"`
	model.Metadata
}
