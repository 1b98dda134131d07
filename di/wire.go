//go:build wireinject
// +build wireinject

package di

import (
	"chicstation/config"
	"chicstation/infras/jwt"
	"chicstation/infras/kafka"
	"chicstation/infras/otel"
	"chicstation/infras/postgres"
	"chicstation/infras/redis"
	"chicstation/infras/s3"
	"chicstation/permissions"
	"chicstation/shared/cache"
	"chicstation/transport/http"
	"chicstation/transport/http/middleware"
	"chicstation/transport/http/router"

	accountRepository "chicstation/internal/domains/account/repository"
	accountService "chicstation/internal/domains/account/service"
	appointmentRepository "chicstation/internal/domains/appointment/repository"
	appointmentService "chicstation/internal/domains/appointment/service"
	authService "chicstation/internal/domains/auth/service"
	catalogRepository "chicstation/internal/domains/catalog/repository"
	catalogService "chicstation/internal/domains/catalog/service"
	employeeRepository "chicstation/internal/domains/employee/repository"
	employeeService "chicstation/internal/domains/employee/service"
	reportService "chicstation/internal/domains/report/service"

	accountHandler "chicstation/internal/handlers/account"
	appointmentHandler "chicstation/internal/handlers/appointment"
	authHandler "chicstation/internal/handlers/auth"
	catalogHandler "chicstation/internal/handlers/catalog"
	employeeHandler "chicstation/internal/handlers/employee"
	reportHandler "chicstation/internal/handlers/report"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var accountDomain = wire.NewSet(
	accountRepository.New,
	accountService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	appointmentDomain,
	accountDomain,
	authDomain,
	employeeDomain,
	catalogDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	accountHandler.New,
	appointmentHandler.New,
	employeeHandler.New,
	catalogHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
