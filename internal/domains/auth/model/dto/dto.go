package dto

import (
	"time"

	"chicstation/infras/jwt"
	accountModel "chicstation/internal/domains/account/model"
	accountDto "chicstation/internal/domains/account/model/dto"
	"chicstation/shared/constant"
	"chicstation/shared/timezone"
)

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"required,phoneph"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

// ToAccountRequest shapes the registration payload for account creation.
// Self-registered accounts always start as regular users.
func (r RegisterRequest) ToAccountRequest() accountDto.CreateAccountRequest {
	req := accountDto.CreateAccountRequest{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
	}

	if r.Address != constant.Empty {
		req.Address = &r.Address
	}

	return req
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *LoginResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72,nefield=OldPassword"`
}

// UpdateLastLoginFields returns the column patch recorded on every
// successful login.
func UpdateLastLoginFields(email string) map[string]any {
	now := timezone.Now()

	return map[string]any{
		accountModel.FieldLastLogin: now.Format(time.RFC3339),
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    email,
	}
}
