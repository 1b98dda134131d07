package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"chicstation/config"
	kafkaMocks "chicstation/infras/kafka/mocks"
	"chicstation/infras/otel/mocks"
	apptMocks "chicstation/internal/domains/appointment/mocks"
	"chicstation/internal/domains/appointment/model"
	"chicstation/internal/domains/appointment/model/dto"
	"chicstation/internal/domains/appointment/service"
	cacheMocks "chicstation/shared/cache/mocks"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	gModel "chicstation/shared/model"
	"chicstation/shared/timezone"
)

type testEnv struct {
	repo   *apptMocks.MockAppointment
	cache  *cacheMocks.MockRedisCache
	broker *kafkaMocks.MockClient
	svc    service.Appointment
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := apptMocks.NewMockAppointment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	broker := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.AppointmentEvents = "appointment-events"

	// Event publishing and cache invalidation run in background goroutines
	// after every write, so they are allowed rather than asserted.
	broker.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return testEnv{
		repo:   repo,
		cache:  mockCache,
		broker: broker,
		svc:    service.New(repo, cfg, mockCache, broker, mocks.NewOtel()),
	}
}

// nextSlot returns a bookable time a week out at the given hour.
func nextSlot(hour int) time.Time {
	day := timezone.Now().AddDate(0, 0, 7)

	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, timezone.GetLocation())
}

func userCtx(email string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserEmail, email)
}

func adminCtx(email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func pendingAppt(id string, dateTime time.Time) model.Appointment {
	return model.Appointment{
		ID:        id,
		UserEmail: "client@example.com",
		Service:   "Haircut",
		Employee:  "Anna",
		DateTime:  dateTime,
		Status:    model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "client@example.com",
			ModifiedBy: "client@example.com",
		},
	}
}

func TestAppointmentService_SubmitBooking(t *testing.T) {
	slot := nextSlot(10)

	validReq := dto.CreateAppointmentRequest{
		Service:  "Haircut",
		Employee: "Anna",
		Date:     slot.Format("2006-01-02"),
		Time:     slot.Format("15:04"),
	}

	tests := []struct {
		name      string
		req       dto.CreateAppointmentRequest
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "successful booking",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				env.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "invalid date format",
			req: dto.CreateAppointmentRequest{
				Service:  "Haircut",
				Employee: "Anna",
				Date:     "not-a-date",
				Time:     "10:00",
			},
			setupMock: func(testEnv) {},
			wantErr:   true,
		},
		{
			name: "slot already taken",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{pendingAppt("a1", slot)}, nil)
			},
			wantErr: true,
		},
		{
			name: "outside opening hours",
			req: dto.CreateAppointmentRequest{
				Service:  "Haircut",
				Employee: "Anna",
				Date:     slot.Format("2006-01-02"),
				Time:     "20:00",
			},
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantErr: true,
		},
		{
			name: "time in the past",
			req: dto.CreateAppointmentRequest{
				Service:  "Haircut",
				Employee: "Anna",
				Date:     "2020-01-06",
				Time:     "10:00",
			},
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantErr: true,
		},
		{
			name: "snapshot read error",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				env.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			err := env.svc.SubmitBooking(userCtx("client@example.com"), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Accept(t *testing.T) {
	slot := nextSlot(10)
	target := pendingAppt("appt-1", slot)

	tests := []struct {
		name      string
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "successful accept",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(target, nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{target}, nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "pending appointment at same slot does not block",
			setupMock: func(env testEnv) {
				other := pendingAppt("appt-2", slot)

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(target, nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{target, other}, nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "accepted appointment at same slot blocks",
			setupMock: func(env testEnv) {
				other := pendingAppt("appt-2", slot)
				other.Status = model.StatusAccepted

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(target, nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{target, other}, nil)
			},
			wantErr: true,
		},
		{
			name: "appointment not found",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(target, nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{target}, nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			err := env.svc.Accept(userCtx("admin@example.com"), "appt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Decline(t *testing.T) {
	slot := nextSlot(10)

	tests := []struct {
		name      string
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "declines a pending appointment",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "declines an already accepted appointment",
			setupMock: func(env testEnv) {
				accepted := pendingAppt("appt-1", slot)
				accepted.Status = model.StatusAccepted

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accepted, nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			err := env.svc.Decline(userCtx("admin@example.com"), "appt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Edit(t *testing.T) {
	slot := nextSlot(10)
	newSlot := nextSlot(11)
	lastWeek := timezone.Now().AddDate(0, 0, -7)

	validReq := dto.EditAppointmentRequest{
		Date: newSlot.Format("2006-01-02"),
		Time: newSlot.Format("15:04"),
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.EditAppointmentRequest
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "reschedules a pending appointment",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "accepted appointment cannot be rescheduled",
			req:  validReq,
			setupMock: func(env testEnv) {
				accepted := pendingAppt("appt-1", slot)
				accepted.Status = model.StatusAccepted

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accepted, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid new time",
			req:  dto.EditAppointmentRequest{Date: "not-a-date", Time: "11:00"},
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)
			},
			wantErr: true,
		},
		{
			name: "cannot reschedule into the past",
			req: dto.EditAppointmentRequest{
				Date: lastWeek.Format("2006-01-02"),
				Time: "10:00",
			},
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)
			},
			wantErr: true,
		},
		{
			name: "cannot reschedule another client's appointment",
			ctx:  userCtx("other@example.com"),
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)
			},
			wantErr: true,
		},
		{
			name: "staff can reschedule any appointment",
			ctx:  adminCtx("staff@chicstation.com"),
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			req:  validReq,
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			ctx := tt.ctx
			if ctx == nil {
				ctx = userCtx("client@example.com")
			}

			err := env.svc.Edit(ctx, tt.req, "appt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Cancel(t *testing.T) {
	slot := nextSlot(10)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "cancels a pending appointment",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cancels an accepted appointment",
			setupMock: func(env testEnv) {
				accepted := pendingAppt("appt-1", slot)
				accepted.Status = model.StatusAccepted

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accepted, nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Appointment{}, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "cannot cancel another client's appointment",
			ctx:  userCtx("other@example.com"),
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)
			},
			wantErr: true,
		},
		{
			name: "staff can cancel any appointment",
			ctx:  adminCtx("staff@chicstation.com"),
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingAppt("appt-1", slot), nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			ctx := tt.ctx
			if ctx == nil {
				ctx = userCtx("client@example.com")
			}

			err := env.svc.Cancel(ctx, "appt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_GetAll(t *testing.T) {
	slot := nextSlot(10)

	tests := []struct {
		name      string
		setupMock func(env testEnv)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func(env testEnv) {
				env.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss reads from repository",
			setupMock: func(env testEnv) {
				env.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				env.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Appointment{pendingAppt("appt-1", slot)}, nil)
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func(env testEnv) {
				env.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				env.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			result, err := env.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}

func TestAppointmentService_GetMine(t *testing.T) {
	slot := nextSlot(10)

	t.Run("missing user identity", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetMine(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.Error(t, err)
	})

	t.Run("returns only the caller's appointments", func(t *testing.T) {
		env := newTestEnv(t)

		env.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		env.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		env.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{pendingAppt("appt-1", slot)}, nil)

		result, err := env.svc.GetMine(userCtx("client@example.com"), gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Len(t, result.Appointments, 1)
		assert.Equal(t, "client@example.com", result.Appointments[0].UserEmail)
	})
}
