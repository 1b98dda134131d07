package dto_test

import (
	"testing"
	"time"

	"chicstation/internal/domains/appointment/model"
	"chicstation/internal/domains/appointment/model/dto"
	gModel "chicstation/shared/model"
	"chicstation/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		Service:  "Haircut",
		Employee: "Andrea Santos",
		Date:     "2026-09-14",
		Time:     "10:30",
	}

	userEmail := "jane@example.com"
	appt, err := req.ToModel(userEmail)

	assert.NoError(t, err)
	assert.NotEmpty(t, appt.ID, "expected ID to be generated")
	assert.Equal(t, userEmail, appt.UserEmail)
	assert.Equal(t, req.Service, appt.Service)
	assert.Equal(t, req.Employee, appt.Employee)
	assert.Equal(t, model.StatusPending, appt.Status)
	assert.Equal(t, userEmail, appt.CreatedBy)
	assert.Equal(t, userEmail, appt.ModifiedBy)

	want := time.Date(2026, 9, 14, 10, 30, 0, 0, timezone.GetLocation())
	assert.True(t, appt.DateTime.Equal(want))
}

func TestCreateAppointmentRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		Service:  "Haircut",
		Employee: "Andrea Santos",
		Date:     "14-09-2026",
		Time:     "10:30",
	}

	_, err := req.ToModel("jane@example.com")

	assert.Error(t, err)
}

func TestEditAppointmentRequest_DateTime(t *testing.T) {
	req := dto.EditAppointmentRequest{
		Date: "2026-09-15",
		Time: "16:00",
	}

	dateTime, err := req.DateTime()

	assert.NoError(t, err)

	want := time.Date(2026, 9, 15, 16, 0, 0, 0, timezone.GetLocation())
	assert.True(t, dateTime.Equal(want))
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	appt := model.Appointment{
		ID:        "appt-1",
		UserEmail: "jane@example.com",
		Service:   "Mani/Pedi",
		Employee:  "Miguel Reyes",
		DateTime:  time.Date(2026, 9, 14, 10, 30, 0, 0, timezone.GetLocation()),
		Status:    model.StatusAccepted,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "jane@example.com",
			ModifiedBy: "admin@example.com",
		},
	}

	var response dto.AppointmentResponse
	response.FromModel(appt)

	assert.Equal(t, appt.ID, response.ID)
	assert.Equal(t, appt.UserEmail, response.UserEmail)
	assert.Equal(t, appt.Service, response.Service)
	assert.Equal(t, appt.Employee, response.Employee)
	assert.Equal(t, "2026-09-14", response.Date)
	assert.Equal(t, "10:30", response.Time)
	assert.Equal(t, model.StatusAccepted, response.Status)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	models := []model.Appointment{
		{ID: "appt-1", Status: model.StatusPending},
		{ID: "appt-2", Status: model.StatusAccepted},
	}

	var response dto.GetAppointmentsResponse
	response.FromModels(models, 12, 5)

	assert.Len(t, response.Appointments, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
}

func TestNewAppointmentEvent(t *testing.T) {
	appt := model.Appointment{
		ID:        "appt-1",
		UserEmail: "jane@example.com",
		Service:   "Wax",
		Employee:  "Andrea Santos",
		DateTime:  timezone.Now(),
		Status:    model.StatusPending,
	}

	event := dto.NewAppointmentEvent(dto.EventBooked, appt)

	assert.Equal(t, dto.EventBooked, event.Type)
	assert.Equal(t, appt.ID, event.ID)
	assert.Equal(t, appt.UserEmail, event.UserEmail)
	assert.Equal(t, appt.Status, event.Status)
	assert.False(t, event.OccurredAt.IsZero(), "expected OccurredAt to be set")
}
