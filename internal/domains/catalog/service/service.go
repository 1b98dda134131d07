package service

import (
	"context"
	"fmt"

	"chicstation/config"
	"chicstation/infras/otel"
	"chicstation/internal/domains/catalog/model"
	"chicstation/internal/domains/catalog/model/dto"
	"chicstation/internal/domains/catalog/repository"
	"chicstation/shared/cache"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheGetAllService = "catalog:gets"

// Catalog exposes the public list of bookable services. The list is
// seeded by migration and read-mostly, so it is cached aggressively.
type Catalog interface {
	GetAll(ctx context.Context) (dto.GetServicesResponse, error)
}

type serviceImpl struct {
	repo  repository.Catalog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllService, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllService).Msg("cache hit for services")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: "ASC"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllService, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}
