package policy_test

import (
	"testing"
	"time"

	"chicstation/internal/domains/appointment/model"
	"chicstation/internal/domains/appointment/policy"

	"github.com/stretchr/testify/assert"
)

var testLoc = time.FixedZone("salon", 8*60*60)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.September, 14, hour, minute, 0, 0, testLoc)
}

func appt(id, employee, status string, dateTime time.Time) model.Appointment {
	return model.Appointment{
		ID:        id,
		UserEmail: "client@example.com",
		Service:   "Haircut",
		Employee:  employee,
		DateTime:  dateTime,
		Status:    status,
	}
}

func TestCanBook(t *testing.T) {
	now := at(8, 0)

	tests := []struct {
		name     string
		existing []model.Appointment
		req      model.Appointment
		wantErr  error
	}{
		{
			name:    "valid request with empty calendar",
			req:     appt("", "Anna", "", at(10, 0)),
			wantErr: nil,
		},
		{
			name:    "missing service",
			req:     model.Appointment{Employee: "Anna", DateTime: at(10, 0)},
			wantErr: policy.ErrMissingFields,
		},
		{
			name:    "missing employee",
			req:     model.Appointment{Service: "Haircut", DateTime: at(10, 0)},
			wantErr: policy.ErrMissingFields,
		},
		{
			name:    "missing date and time",
			req:     model.Appointment{Service: "Haircut", Employee: "Anna"},
			wantErr: policy.ErrMissingFields,
		},
		{
			name:    "time in the past",
			req:     appt("", "Anna", "", at(7, 30)),
			wantErr: policy.ErrPastDateTime,
		},
		{
			name:    "before opening hour",
			req:     appt("", "Anna", "", at(8, 59)),
			wantErr: policy.ErrOutsideHours,
		},
		{
			name:    "exactly at opening hour",
			req:     appt("", "Anna", "", at(9, 0)),
			wantErr: nil,
		},
		{
			name:    "last bookable minute",
			req:     appt("", "Anna", "", at(18, 59)),
			wantErr: nil,
		},
		{
			name:    "exactly at closing hour",
			req:     appt("", "Anna", "", at(19, 0)),
			wantErr: policy.ErrOutsideHours,
		},
		{
			name: "identical timestamp with same employee",
			existing: []model.Appointment{
				appt("a1", "Anna", model.StatusPending, at(10, 0)),
			},
			req:     appt("", "Anna", "", at(10, 0)),
			wantErr: policy.ErrSlotTaken,
		},
		{
			name: "identical timestamp with different employee still collides",
			existing: []model.Appointment{
				appt("a1", "Anna", model.StatusPending, at(10, 0)),
			},
			req:     appt("", "Bea", "", at(10, 0)),
			wantErr: policy.ErrSlotTaken,
		},
		{
			name: "declined appointment still holds the slot",
			existing: []model.Appointment{
				appt("a1", "Anna", model.StatusDeclined, at(10, 0)),
			},
			req:     appt("", "Anna", "", at(10, 0)),
			wantErr: policy.ErrSlotTaken,
		},
		{
			name: "one second apart does not collide",
			existing: []model.Appointment{
				appt("a1", "Anna", model.StatusAccepted, at(10, 0)),
			},
			req:     appt("", "Anna", "", at(10, 0).Add(time.Second)),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanBook(tt.existing, tt.req, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanAccept(t *testing.T) {
	target := appt("t1", "Anna", model.StatusPending, at(10, 0))

	tests := []struct {
		name     string
		existing []model.Appointment
		wantErr  error
	}{
		{
			name:    "no other appointments",
			wantErr: nil,
		},
		{
			name: "pending appointment at same time does not block",
			existing: []model.Appointment{
				appt("a1", "Bea", model.StatusPending, at(10, 0)),
			},
			wantErr: nil,
		},
		{
			name: "declined appointment at same time does not block",
			existing: []model.Appointment{
				appt("a1", "Bea", model.StatusDeclined, at(10, 0)),
			},
			wantErr: nil,
		},
		{
			name: "accepted appointment at same time blocks",
			existing: []model.Appointment{
				appt("a1", "Bea", model.StatusAccepted, at(10, 0)),
			},
			wantErr: policy.ErrSlotConflict,
		},
		{
			name: "accepted appointment at different time does not block",
			existing: []model.Appointment{
				appt("a1", "Bea", model.StatusAccepted, at(11, 0)),
			},
			wantErr: nil,
		},
		{
			name: "the target itself is excluded",
			existing: []model.Appointment{
				appt("t1", "Anna", model.StatusAccepted, at(10, 0)),
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanAccept(tt.existing, target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	now := at(9, 0)

	tests := []struct {
		name        string
		status      string
		newDateTime time.Time
		wantErr     error
	}{
		{name: "pending can be rescheduled", status: model.StatusPending, newDateTime: at(11, 0), wantErr: nil},
		{name: "accepted cannot be rescheduled", status: model.StatusAccepted, newDateTime: at(11, 0), wantErr: policy.ErrNotPending},
		{name: "declined cannot be rescheduled", status: model.StatusDeclined, newDateTime: at(11, 0), wantErr: policy.ErrNotPending},
		{name: "new time missing", status: model.StatusPending, wantErr: policy.ErrMissingFields},
		{name: "new time in the past", status: model.StatusPending, newDateTime: at(8, 0), wantErr: policy.ErrPastDateTime},
		{name: "new time outside opening hours is not re-screened", status: model.StatusPending, newDateTime: at(22, 0), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanEdit(appt("t1", "Anna", tt.status, at(10, 0)), tt.newDateTime, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Walks a full lifecycle the way the salon staff would see it: a client
// books a slot, staff accepts it, and later requests are judged against
// the updated calendar.
func TestBookingLifecycle(t *testing.T) {
	now := at(8, 0)
	calendar := []model.Appointment{}

	first := appt("a1", "Anna", model.StatusPending, at(10, 0))
	assert.NoError(t, policy.CanBook(calendar, first, now))
	calendar = append(calendar, first)

	// A second client cannot grab the identical slot even with another stylist.
	second := appt("a2", "Bea", model.StatusPending, at(10, 0))
	assert.ErrorIs(t, policy.CanBook(calendar, second, now), policy.ErrSlotTaken)

	// Staff accepts the first request.
	assert.NoError(t, policy.CanAccept(calendar, first))
	calendar[0].Status = model.StatusAccepted

	// Once accepted, a pending appointment at the same time cannot be accepted too.
	late := appt("a3", "Bea", model.StatusPending, at(10, 0))
	assert.ErrorIs(t, policy.CanAccept(append(calendar, late), late), policy.ErrSlotConflict)

	// The accepted appointment can no longer be moved.
	assert.ErrorIs(t, policy.CanEdit(calendar[0], at(11, 0), now), policy.ErrNotPending)
}
