package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"chicstation/config"
	"chicstation/infras/otel/mocks"
	employeeMocks "chicstation/internal/domains/employee/mocks"
	"chicstation/internal/domains/employee/model"
	"chicstation/internal/domains/employee/model/dto"
	"chicstation/internal/domains/employee/service"
	cacheMocks "chicstation/shared/cache/mocks"
	gDto "chicstation/shared/dto"
)

type testEnv struct {
	repo  *employeeMocks.MockEmployee
	cache *cacheMocks.MockRedisCache
	svc   service.Employee
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := employeeMocks.NewMockEmployee(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run in background goroutines, so they
	// are allowed rather than asserted.
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return testEnv{
		repo:  repo,
		cache: mockCache,
		svc:   service.New(repo, cfg, mockCache, mocks.NewOtel()),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	req := dto.CreateEmployeeRequest{Name: "Andrea Santos"}

	t.Run("successful create", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := env.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, req.Name, result.Name)
		assert.True(t, result.Active)
		assert.NotEmpty(t, result.ID)
	})

	t.Run("insert error", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("db error"))

		_, err := env.svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	employees := []model.Employee{
		{ID: "emp-1", Name: "Andrea Santos", Active: true},
		{ID: "emp-2", Name: "Miguel Reyes", Active: true},
	}

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
					Return(len(employees), nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(employees, nil)
			},
			wantErr:   false,
			wantTotal: 2,
		},
		{
			name: "repository error",
			setupMock: func(env testEnv) {
				env.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				env.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(len(employees), nil)

				env.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
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

func TestEmployeeService_Delete(t *testing.T) {
	employee := model.Employee{ID: "emp-1", Name: "Andrea Santos", Active: true}

	tests := []struct {
		name      string
		setupMock func(env testEnv)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(employee, nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "employee not found",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Employee{}, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			setupMock: func(env testEnv) {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(employee, nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setupMock(env)

			err := env.svc.Delete(context.Background(), "emp-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
