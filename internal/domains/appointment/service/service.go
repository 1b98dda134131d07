package service

import (
	"context"
	"errors"
	"fmt"

	"chicstation/config"
	"chicstation/infras/kafka"
	"chicstation/infras/otel"
	"chicstation/internal/domains/appointment/model"
	"chicstation/internal/domains/appointment/model/dto"
	"chicstation/internal/domains/appointment/policy"
	"chicstation/internal/domains/appointment/repository"
	"chicstation/shared"
	"chicstation/shared/cache"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/failure"
	"chicstation/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

type Appointment interface {
	SubmitBooking(ctx context.Context, req dto.CreateAppointmentRequest) error
	Accept(ctx context.Context, id string) error
	Decline(ctx context.Context, id string) error
	Edit(ctx context.Context, req dto.EditAppointmentRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo   repository.Appointment
	cfg    *config.Config
	cache  cache.RedisCache
	broker kafka.Client
	otel   otel.Otel
}

func New(repo repository.Appointment, cfg *config.Config, cache cache.RedisCache, broker kafka.Client, otel otel.Otel) Appointment {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		broker: broker,
		otel:   otel,
	}
}

// SubmitBooking screens the request against the calendar snapshot and, when
// it passes, stores it as a pending appointment. The snapshot read and the
// insert are not atomic; two requests racing for the same second can both
// pass the screen, and staff resolves the collision at acceptance time.
func (s *serviceImpl) SubmitBooking(ctx context.Context, req dto.CreateAppointmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	appt, err := req.ToModel(userEmail)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	sameSlot, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filterBySlot(appt.DateTime))
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointments for slot")

		return fmt.Errorf("failed to load appointments for slot: %w", err)
	}

	if err = policy.CanBook(sameSlot, appt, timezone.Now()); err != nil {
		return asFailure(err)
	}

	if err = s.repo.Insert(ctx, appt); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return fmt.Errorf("failed to create appointment: %w", err)
	}

	s.afterWrite(ctx, appt.ID, dto.NewAppointmentEvent(dto.EventBooked, appt))

	return nil
}

// Accept moves a pending request to accepted, provided no other accepted
// appointment already occupies the identical timestamp.
func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	target, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	sameSlot, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filterBySlot(target.DateTime))
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointments for slot")

		return fmt.Errorf("failed to load appointments for slot: %w", err)
	}

	if err = policy.CanAccept(sameSlot, target); err != nil {
		return asFailure(err)
	}

	if err = s.setStatus(ctx, id, model.StatusAccepted); err != nil {
		return err
	}

	target.Status = model.StatusAccepted
	s.afterWrite(ctx, id, dto.NewAppointmentEvent(dto.EventAccepted, target))

	return nil
}

// Decline rejects an appointment. Staff may decline regardless of the
// current status or any slot contention.
func (s *serviceImpl) Decline(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	target, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err = s.setStatus(ctx, id, model.StatusDeclined); err != nil {
		return err
	}

	target.Status = model.StatusDeclined
	s.afterWrite(ctx, id, dto.NewAppointmentEvent(dto.EventDeclined, target))

	return nil
}

// Edit reschedules a pending appointment to a new timestamp and keeps it in
// the pending queue for staff to re-review.
func (s *serviceImpl) Edit(ctx context.Context, req dto.EditAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Edit")
	defer scope.End()
	defer scope.TraceIfError(err)

	target, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if !callerMayModify(ctx, target) {
		return failure.Forbidden("appointment belongs to another client") // nolint:wrapcheck
	}

	newDateTime, err := req.DateTime()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse new appointment time")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = policy.CanEdit(target, newDateTime, timezone.Now()); err != nil {
		return asFailure(err)
	}

	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	updated := map[string]any{
		model.FieldDateTime:      newDateTime,
		model.FieldStatus:        model.StatusPending,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userEmail,
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reschedule appointment")

		return fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	target.DateTime = newDateTime
	target.Status = model.StatusPending
	s.afterWrite(ctx, id, dto.NewAppointmentEvent(dto.EventEdited, target))

	return nil
}

// Cancel removes an appointment from the calendar entirely, whatever its
// status.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	target, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if !callerMayModify(ctx, target) {
		return failure.Forbidden("appointment belongs to another client") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel appointment")

		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.afterWrite(ctx, id, dto.NewAppointmentEvent(dto.EventCancelled, target))

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appt, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appt)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

// GetMine lists only the calling client's appointments, keyed by the email
// in the access token.
func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if userEmail == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserEmail,
				Value:    userEmail,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Appointment, error) {
	appt, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return appt, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appt.ID == constant.Empty {
		return appt, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appt, nil
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status string) error {
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	updated := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userEmail,
	}

	if err := s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	return nil
}

// afterWrite publishes the lifecycle event and drops stale cache entries.
// Both run off the request path; failures are logged, never surfaced.
func (s *serviceImpl) afterWrite(ctx context.Context, id string, event dto.AppointmentEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		topic := s.cfg.Kafka.Topic.AppointmentEvents
		if topic != constant.Empty {
			err := s.broker.SendMessages(c, topic, kafka.Message{Key: event.ID, Value: event})
			if err != nil {
				log.Error().Err(err).Str("type", event.Type).Msg("failed to publish appointment event")
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}

func filterBySlot(dateTime any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDateTime,
				Value:    dateTime,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// callerMayModify reports whether the request context belongs to the
// appointment's owner or to salon staff.
func callerMayModify(ctx context.Context, target model.Appointment) bool {
	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleAdmin {
		return true
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	return email != "" && email == target.UserEmail
}

func asFailure(err error) error {
	switch {
	case errors.Is(err, policy.ErrSlotTaken), errors.Is(err, policy.ErrSlotConflict):
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	default:
		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}
}
