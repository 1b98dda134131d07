// Package policy holds the booking rules for salon appointments. Every
// decision is a pure function over an in-memory snapshot of appointments,
// so the rules can be tested without a database and reused by any caller
// that already holds the relevant rows.
package policy

import (
	"errors"
	"time"

	"chicstation/internal/domains/appointment/model"
)

// Walk-in hours. A slot is bookable when its local hour is at or after
// OpenHour and strictly before CloseHour.
const (
	OpenHour  = 9
	CloseHour = 19
)

var (
	ErrMissingFields = errors.New("service, employee, date and time are all required")
	ErrPastDateTime  = errors.New("appointment time is in the past")
	ErrOutsideHours  = errors.New("appointment time is outside opening hours")
	ErrSlotTaken     = errors.New("slot is already taken by another appointment")
	ErrSlotConflict  = errors.New("another accepted appointment occupies this slot")
	ErrNotPending    = errors.New("only pending appointments can be rescheduled")
)

// CanBook reports whether a new appointment may be submitted given a
// snapshot of existing appointments. The slot check is timestamp-identity:
// any appointment at the exact same instant blocks the request, whatever
// its employee or status. Times one second apart never collide.
func CanBook(existing []model.Appointment, req model.Appointment, now time.Time) error {
	if req.Service == "" || req.Employee == "" || req.DateTime.IsZero() {
		return ErrMissingFields
	}

	if req.DateTime.Before(now) {
		return ErrPastDateTime
	}

	hour := req.DateTime.Hour()
	if hour < OpenHour || hour >= CloseHour {
		return ErrOutsideHours
	}

	for _, appt := range existing {
		if appt.DateTime.Equal(req.DateTime) {
			return ErrSlotTaken
		}
	}

	return nil
}

// CanAccept reports whether the appointment identified by targetID may move
// to accepted. Only other accepted appointments at the identical timestamp
// block acceptance; pending and declined ones do not.
func CanAccept(existing []model.Appointment, target model.Appointment) error {
	for _, appt := range existing {
		if appt.ID == target.ID {
			continue
		}

		if appt.Status == model.StatusAccepted && appt.DateTime.Equal(target.DateTime) {
			return ErrSlotConflict
		}
	}

	return nil
}

// CanEdit reports whether the appointment may be rescheduled to newDateTime.
// Rescheduling is only offered while a request sits in the pending queue;
// once staff has accepted or declined, the decision stands and the client
// must cancel and rebook. The new time must lie in the future, but it is not
// re-screened against opening hours or other appointments.
func CanEdit(target model.Appointment, newDateTime, now time.Time) error {
	if target.Status != model.StatusPending {
		return ErrNotPending
	}

	if newDateTime.IsZero() {
		return ErrMissingFields
	}

	if newDateTime.Before(now) {
		return ErrPastDateTime
	}

	return nil
}
