package model

import (
	"time"

	"chicstation/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID        = "id"
	FieldUserEmail = "user_email"
	FieldService   = "service"
	FieldEmployee  = "employee"
	FieldDateTime  = "appointment_date_time"
	FieldStatus    = "status"
	FieldCreatedBy = "created_by"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

type Appointment struct {
	ID        string    `db:"id"`
	UserEmail string    `db:"user_email"`
	Service   string    `db:"service"`
	Employee  string    `db:"employee"`
	DateTime  time.Time `db:"appointment_date_time"`
	Status    string    `db:"status"`
	model.Metadata
}
