package service

import (
	"context"
	"fmt"
	"time"

	"chicstation/config"
	"chicstation/infras/otel"
	apptModel "chicstation/internal/domains/appointment/model"
	apptRepo "chicstation/internal/domains/appointment/repository"
	"chicstation/internal/domains/report/model/dto"
	"chicstation/shared"
	"chicstation/shared/cache"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/failure"
	"chicstation/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheDailyBreakdown = "report:daily"
	cacheCountInRange   = "report:count"
)

type Report interface {
	DailyBreakdown(ctx context.Context, from, to string) (dto.DailyBreakdownResponse, error)
	CountInRange(ctx context.Context, from, to string) (dto.CountResponse, error)
}

type serviceImpl struct {
	apptRepo apptRepo.Appointment
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(apptRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		apptRepo: apptRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// DailyBreakdown aggregates every appointment in the inclusive date range
// into per-day rows for the admin dashboard.
func (s *serviceImpl) DailyBreakdown(ctx context.Context, from, to string) (res dto.DailyBreakdownResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DailyBreakdown")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err := rangeFilter(from, to)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheDailyBreakdown, from, to)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for daily breakdown")

		return res, nil
	}

	appts, err := s.apptRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointments for report")

		return res, fmt.Errorf("failed to load appointments for report: %w", err)
	}

	res.Days = dto.GroupByDate(appts)
	res.TotalData = len(appts)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save daily breakdown to cache")
		}
	}()

	return res, nil
}

// CountInRange returns the number of appointments whose date falls inside
// the inclusive [from, to] range.
func (s *serviceImpl) CountInRange(ctx context.Context, from, to string) (res dto.CountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountInRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err := rangeFilter(from, to)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheCountInRange, from, to)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	count, err := s.apptRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments for report")

		return res, fmt.Errorf("failed to count appointments for report: %w", err)
	}

	res = dto.CountResponse{From: from, To: to, Count: count}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

// rangeFilter translates an inclusive date range into a timestamp window
// over the appointment column. Both bounds are interpreted in the salon's
// timezone; the end bound runs to the last instant of its day.
func rangeFilter(from, to string) (gDto.FilterGroup, error) {
	loc := timezone.GetLocation()

	start, err := time.ParseInLocation(constant.DateOnlyFormat, from, loc)
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequestFromString(fmt.Sprintf("invalid from date: %v", err)) // nolint:wrapcheck
	}

	end, err := time.ParseInLocation(constant.DateOnlyFormat, to, loc)
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequestFromString(fmt.Sprintf("invalid to date: %v", err)) // nolint:wrapcheck
	}

	if end.Before(start) {
		return gDto.FilterGroup{}, failure.BadRequestFromString("to date must not precede from date") // nolint:wrapcheck
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "range_start",
				Field:    apptModel.FieldDateTime,
				Value:    start,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    apptModel.TableName,
			},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    apptModel.FieldDateTime,
				Value:    end.AddDate(0, 0, 1).Add(-time.Nanosecond),
				Operator: gDto.FilterOperatorLessEq,
				Table:    apptModel.TableName,
			},
		},
	}, nil
}
