package dto

import (
	"time"

	"chicstation/internal/domains/appointment/model"
	"chicstation/shared"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	gModel "chicstation/shared/model"
	"chicstation/shared/timezone"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	Service  string `json:"service"  validate:"required,max=100"`
	Employee string `json:"employee" validate:"required,max=100"`
	Date     string `json:"date"     validate:"required"`
	Time     string `json:"time"     validate:"required"`
}

func (c *CreateAppointmentRequest) ToModel(userEmail string) (model.Appointment, error) {
	dateTime, err := combineDateTime(c.Date, c.Time)
	if err != nil {
		return model.Appointment{}, err
	}

	return model.Appointment{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		Service:   c.Service,
		Employee:  c.Employee,
		DateTime:  dateTime,
		Status:    model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userEmail,
			ModifiedBy: userEmail,
		},
	}, nil
}

type EditAppointmentRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

func (e *EditAppointmentRequest) DateTime() (time.Time, error) {
	return combineDateTime(e.Date, e.Time)
}

func combineDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, timezone.GetLocation())
}

type AppointmentResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Service   string `json:"service"`
	Employee  string `json:"employee"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	local := timezone.ToAppTime(model.DateTime)

	r.ID = model.ID
	r.UserEmail = model.UserEmail
	r.Service = model.Service
	r.Employee = model.Employee
	r.Date = local.Format(constant.DateOnlyFormat)
	r.Time = local.Format("15:04")
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// Event types published to the appointment lifecycle topic.
const (
	EventBooked    = "appointment.booked"
	EventAccepted  = "appointment.accepted"
	EventDeclined  = "appointment.declined"
	EventEdited    = "appointment.edited"
	EventCancelled = "appointment.cancelled"
)

type AppointmentEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	UserEmail  string    `json:"user_email"`
	Service    string    `json:"service"`
	Employee   string    `json:"employee"`
	DateTime   time.Time `json:"date_time"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAppointmentEvent(eventType string, appt model.Appointment) AppointmentEvent {
	return AppointmentEvent{
		Type:       eventType,
		ID:         appt.ID,
		UserEmail:  appt.UserEmail,
		Service:    appt.Service,
		Employee:   appt.Employee,
		DateTime:   appt.DateTime,
		Status:     appt.Status,
		OccurredAt: timezone.Now(),
	}
}
