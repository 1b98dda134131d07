package model

import (
	"chicstation/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID     = "id"
	FieldName   = "name"
	FieldPrice  = "price"
	FieldActive = "active"
)

// Service is a bookable salon offering. Price is in whole pesos.
type Service struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Price  int    `db:"price"`
	Active bool   `db:"active"`
	model.Metadata
}
