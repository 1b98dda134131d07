package report

import (
	"net/http"

	"chicstation/infras/otel"
	"chicstation/internal/domains/report/service"
	"chicstation/shared/constant"
	"chicstation/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/appointments", handler.GetDailyBreakdown)
		routerGroup.Get("/appointments/count", handler.GetCount)
	})
}

// GetDailyBreakdown aggregates appointments per salon-local day.
// @Summary Get the daily appointment breakdown
// @Description Aggregate appointments per day over a date range, with per-day service lists. Admin only.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Data[dto.DailyBreakdownResponse] "Daily breakdown"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyBreakdown")
	defer scope.End()

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	report, err := handler.service.DailyBreakdown(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build daily breakdown")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// GetCount totals appointments over a date range.
// @Summary Get the appointment count
// @Description Count appointments over an inclusive date range. Admin only.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Data[dto.CountResponse] "Appointment count"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/appointments/count [get]
// @Security BearerAuth
func (handler *Handler) GetCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCount")
	defer scope.End()

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	count, err := handler.service.CountInRange(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, count)
}
