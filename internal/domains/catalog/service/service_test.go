package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"chicstation/config"
	"chicstation/infras/otel/mocks"
	catalogMocks "chicstation/internal/domains/catalog/mocks"
	"chicstation/internal/domains/catalog/model"
	"chicstation/internal/domains/catalog/service"
	cacheMocks "chicstation/shared/cache/mocks"
)

func newService(t *testing.T) (service.Catalog, *catalogMocks.MockCatalog, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return service.New(repo, cfg, mockCache, mocks.NewOtel()), repo, mockCache
}

func TestCatalogService_GetAll(t *testing.T) {
	catalog := []model.Service{
		{ID: "svc-1", Name: "Haircut", Price: 99, Active: true},
		{ID: "svc-2", Name: "Rebond", Price: 599, Active: true},
	}

	t.Run("cache hit", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.GetAll(context.Background())

		assert.NoError(t, err)
	})

	t.Run("cache miss reads from repository", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog, nil)

		result, err := svc.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Services, 2)
		assert.Equal(t, "Haircut", result.Services[0].Name)
		assert.Equal(t, 99, result.Services[0].Price)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := svc.GetAll(context.Background())

		assert.Error(t, err)
	})
}
