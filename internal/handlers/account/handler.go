package account

import (
	"net/http"

	"chicstation/infras/otel"
	"chicstation/internal/domains/account/model"
	"chicstation/internal/domains/account/model/dto"
	"chicstation/internal/domains/account/service"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/validator"
	"chicstation/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Account
	otel    otel.Otel
}

func New(service service.Account, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accounts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAccounts)
		routerGroup.Get("/me", handler.GetMe)
		routerGroup.Put("/me", handler.UpdateMe)
	})
}

// GetAccounts retrieves all accounts based on query parameters.
// @Summary Get all accounts
// @Description Retrieve all accounts with optional filtering and pagination. Admin only.
// @Tags Account
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email (substring match)"
// @Param name query string false "Filter by name (substring match)"
// @Success 200 {object} response.Data[dto.GetAccountsResponse] "List of accounts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [get]
// @Security BearerAuth
func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	email := r.URL.Query().Get(model.FieldEmail)
	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	accounts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, accounts)
}

// GetMe retrieves the caller's own account.
// @Summary Get my account
// @Description Retrieve the currently authenticated account's profile.
// @Tags Account
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.AccountResponse] "Account profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	account, err := handler.service.GetMe(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, account)
}

// UpdateMe patches the caller's own profile.
// @Summary Update my account
// @Description Update the currently authenticated account's profile. A profile image is sent as a base64 data URL.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Message "Account updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/me [put]
// @Security BearerAuth
func (handler *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMe")
	defer scope.End()

	req := dto.UpdateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateMe(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update account")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Account updated successfully")
}
