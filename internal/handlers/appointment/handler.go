package appointment

import (
	"net/http"

	"chicstation/infras/otel"
	"chicstation/internal/domains/appointment/model"
	"chicstation/internal/domains/appointment/model/dto"
	"chicstation/internal/domains/appointment/service"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/validator"
	"chicstation/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitBooking)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/me", handler.GetMyAppointments)
		routerGroup.Put("/{id}", handler.EditAppointment)
		routerGroup.Delete("/{id}", handler.CancelAppointment)
		routerGroup.Patch("/{id}/accept", handler.AcceptAppointment)
		routerGroup.Patch("/{id}/decline", handler.DeclineAppointment)
	})
}

// SubmitBooking handles the creation of a new appointment.
// @Summary Book an appointment
// @Description Book a salon appointment with the provided service, employee, date, and time.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Message "Appointment booked successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitBooking")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SubmitBooking(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Appointment booked by " + user)

	response.WithMessage(w, http.StatusCreated, "Appointment booked successfully")
}

// GetAppointments retrieves all appointments based on query parameters.
// @Summary Get all appointments
// @Description Retrieve all appointments with optional filtering and pagination. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_email query string false "Filter by client email"
// @Param employee query string false "Filter by employee"
// @Param status query string false "Filter by status (pending, accepted, declined)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	userEmail := r.URL.Query().Get(model.FieldUserEmail)
	employee := r.URL.Query().Get(model.FieldEmployee)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if userEmail != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    userEmail,
			Table:    model.TableName,
		})
	}

	if employee != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmployee,
			Operator: gDto.FilterOperatorEq,
			Value:    employee,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetMyAppointments retrieves the caller's own appointments.
// @Summary Get my appointments
// @Description Retrieve all appointments booked by the currently authenticated client.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of the caller's appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	appointments, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

// EditAppointment reschedules a pending appointment.
// @Summary Edit an appointment
// @Description Reschedule a pending appointment to a new date and time. The appointment returns to pending review.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.EditAppointmentRequest true "Edit Appointment Request"
// @Success 200 {object} response.Message "Appointment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [put]
// @Security BearerAuth
func (handler *Handler) EditAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditAppointment")
	defer scope.End()

	id := chi.URLParam(r, "id")

	req := dto.EditAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Edit(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit appointment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment updated successfully")
}

// CancelAppointment removes an appointment.
// @Summary Cancel an appointment
// @Description Cancel an appointment, freeing its slot.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointment")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment cancelled successfully")
}

// AcceptAppointment confirms a pending appointment.
// @Summary Accept an appointment
// @Description Confirm a pending appointment. Fails if another accepted appointment already holds the slot. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment accepted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/accept [patch]
// @Security BearerAuth
func (handler *Handler) AcceptAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptAppointment")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept appointment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment accepted successfully")
}

// DeclineAppointment rejects an appointment.
// @Summary Decline an appointment
// @Description Decline an appointment regardless of its current status. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment declined successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/decline [patch]
// @Security BearerAuth
func (handler *Handler) DeclineAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineAppointment")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := handler.service.Decline(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decline appointment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment declined successfully")
}
