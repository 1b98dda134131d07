package service

import (
	"context"
	"fmt"

	"chicstation/config"
	"chicstation/infras/jwt"
	"chicstation/infras/otel"
	accountModel "chicstation/internal/domains/account/model"
	"chicstation/internal/domains/account/repository"
	"chicstation/internal/domains/auth/model/dto"
	"chicstation/shared"
	"chicstation/shared/cache"
	"chicstation/shared/constant"
	gDto "chicstation/shared/dto"
	"chicstation/shared/failure"
	"chicstation/shared/password"
	"chicstation/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheAccountPrefix = "account:"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	accountRepo repository.Account
	jwt         jwt.JWT
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(accountRepo repository.Account, jwtService jwt.JWT, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Auth {
	return &serviceImpl{
		accountRepo: accountRepo,
		jwt:         jwtService,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.accountRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email availability")

		return fmt.Errorf("failed to check email availability: %w", err)
	}

	if taken {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	accountReq := req.ToAccountRequest()
	account := accountReq.ToModel(constant.RoleUser, hashed)

	if err = s.accountRepo.Insert(ctx, account); err != nil {
		log.Error().Err(err).Msg("failed to insert account")

		return fmt.Errorf("failed to insert account: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheAccountPrefix)
	}()

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.getByEmail(ctx, req.Email)
	if err != nil {
		return res, err
	}

	// A uniform rejection keeps unknown emails indistinguishable from
	// wrong passwords.
	if account.ID == constant.Empty {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, account.Password); err != nil {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if !account.Active {
		return res, failure.Unauthorized("account is deactivated") // nolint:wrapcheck
	}

	pair, err := s.jwt.GenerateTokenPair(account.ID, account.Email, account.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, fmt.Errorf("failed to generate token pair: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		filter := shared.FilterByID(account.ID, accountModel.FieldID, accountModel.TableName)
		if err := s.accountRepo.Update(c, dto.UpdateLastLoginFields(account.Email), filter); err != nil {
			log.Warn().Err(err).Msg("failed to record last login")
		}
	}()

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	pair, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if userEmail == constant.Empty {
		return failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	account, err := s.getByEmail(ctx, userEmail)
	if err != nil {
		return err
	}

	if account.ID == constant.Empty {
		return failure.NotFound("account not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.OldPassword, account.Password); err != nil {
		return failure.Unauthorized("old password does not match") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	updatedFields := map[string]any{
		accountModel.FieldPassword: hashed,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   userEmail,
	}

	filter := shared.FilterByID(account.ID, accountModel.FieldID, accountModel.TableName)
	if err = s.accountRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    accountModel.FieldEmail,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
				Table:    accountModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) getByEmail(ctx context.Context, email string) (accountModel.Account, error) {
	account, err := s.accountRepo.Get(ctx, emailFilter(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return account, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
