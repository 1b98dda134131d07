package service

import (
	"context"
	b64 "encoding/base64"
	"fmt"
	"strings"

	"chicstation/config"
	"chicstation/infras/otel"
	"chicstation/infras/s3"
	"chicstation/internal/domains/account/model"
	"chicstation/internal/domains/account/model/dto"
	"chicstation/internal/domains/account/repository"
	"chicstation/shared"
	"chicstation/shared/base64"
	"chicstation/shared/cache"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAccount    = "account:get"
	cacheGetAllAccount = "account:gets"
	cacheCountAccount  = "account:count"

	profileImageDirectory = "profiles"
)

var extensionByContentType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Account interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccountsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetMe(ctx context.Context) (dto.AccountResponse, error)
	UpdateMe(ctx context.Context, req dto.UpdateAccountRequest) error
}

type serviceImpl struct {
	repo    repository.Account
	cfg     *config.Config
	cache   cache.RedisCache
	storage s3.S3
	otel    otel.Otel
}

func New(repo repository.Account, cfg *config.Config, cache cache.RedisCache, storage s3.S3, otel otel.Otel) Account {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		storage: storage,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAccount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for accounts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accounts")

		return res, fmt.Errorf("failed to count accounts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accounts")

		return res, fmt.Errorf("failed to get accounts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save accounts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAccount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for account count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accounts")

		return res, fmt.Errorf("failed to count accounts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMe(ctx context.Context) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMe")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.getByContext(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(account)

	return res, nil
}

// UpdateMe patches the caller's own profile. A profile image arrives as a
// base64 data URL and is swapped for its public object URL before the row
// is written.
func (s *serviceImpl) UpdateMe(ctx context.Context, req dto.UpdateAccountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMe")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.getByContext(ctx)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, account.Email)

	if req.ProfileImage != constant.Empty {
		imageURL, err := s.uploadProfileImage(ctx, account, req.ProfileImage)
		if err != nil {
			return err
		}

		updatedFields[model.FieldProfileImage] = imageURL
	}

	filter := shared.FilterByID(account.ID, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update account")

		return fmt.Errorf("failed to update account: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccount)
		shared.InvalidateCaches(c, s.cache, cacheCountAccount)
	}()

	return nil
}

func (s *serviceImpl) getByContext(ctx context.Context) (model.Account, error) {
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if userEmail == constant.Empty {
		return model.Account{}, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Value:    userEmail,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	account, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return account, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return account, failure.NotFound("account not found") // nolint:wrapcheck
	}

	return account, nil
}

func (s *serviceImpl) uploadProfileImage(ctx context.Context, account model.Account, dataURL string) (string, error) {
	contentType := base64.GetContentType(dataURL)

	ext, ok := extensionByContentType[contentType]
	if !ok {
		return constant.Empty, failure.BadRequestFromString("unsupported image type") // nolint:wrapcheck
	}

	commaIdx := strings.Index(dataURL, ",")
	if commaIdx < 0 {
		return constant.Empty, failure.BadRequestFromString("malformed image data") // nolint:wrapcheck
	}

	imageData, err := b64.StdEncoding.DecodeString(dataURL[commaIdx+1:])
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("malformed image data") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + ext

	imageURL, err := s.storage.UploadFileBytes(ctx, constant.Empty, profileImageDirectory, fileName, contentType, imageData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload profile image")

		return constant.Empty, fmt.Errorf("failed to upload profile image: %w", err)
	}

	// Drop the previous object so the bucket does not accumulate orphans.
	if account.ProfileImage != nil && *account.ProfileImage != constant.Empty {
		go func() {
			c := context.WithoutCancel(ctx)
			bucket := s.cfg.External.S3.BucketName

			objectName := s.storage.GetObjectNameFromURL(bucket, *account.ProfileImage)
			if objectName == constant.Empty {
				return
			}

			if err := s.storage.DeleteFile(c, bucket, constant.Empty, objectName); err != nil {
				log.Warn().Err(err).Str("object", objectName).Msg("failed to delete previous profile image")
			}
		}()
	}

	return imageURL, nil
}
