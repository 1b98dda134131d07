package model

import (
	"chicstation/shared/model"
)

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID     = "id"
	FieldName   = "name"
	FieldActive = "active"
)

type Employee struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
	model.Metadata
}
