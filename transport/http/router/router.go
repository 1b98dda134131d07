package router

import (
	"chicstation/internal/handlers/account"
	"chicstation/internal/handlers/appointment"
	"chicstation/internal/handlers/auth"
	"chicstation/internal/handlers/catalog"
	"chicstation/internal/handlers/employee"
	"chicstation/internal/handlers/report"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Account     account.Handler
	Appointment appointment.Handler
	Employee    employee.Handler
	Catalog     catalog.Handler
	Report      report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Account.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
