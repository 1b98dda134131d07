package dto

import (
	"chicstation/internal/domains/account/model"
	"chicstation/shared"
	gDto "chicstation/shared/dto"
	gModel "chicstation/shared/model"
	"chicstation/shared/timezone"

	"github.com/google/uuid"
)

type CreateAccountRequest struct {
	Name        string  `json:"name"              validate:"required,max=100"`
	Email       string  `json:"email"             validate:"required,email"`
	Password    string  `json:"password"          validate:"required,min=8"`
	PhoneNumber string  `json:"phone_number"      validate:"required,phoneph"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Role        string  `json:"role"              validate:"omitempty,oneof=user admin"`
}

func (r *CreateAccountRequest) ToModel(role, hashedPassword string) model.Account {
	return model.Account{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Email:       r.Email,
		Password:    hashedPassword,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		Role:        role,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  r.Email,
			ModifiedBy: r.Email,
		},
	}
}

type UpdateAccountRequest struct {
	Name        *string `db:"name"         json:"name,omitempty"          validate:"omitempty,max=100"`
	PhoneNumber *string `db:"phone_number" json:"phone_number,omitempty"  validate:"omitempty,phoneph"`
	Address     *string `db:"address"      json:"address,omitempty"       validate:"omitempty,max=255"`
	// ProfileImage carries a base64 data URL; it is uploaded to object
	// storage and replaced with the public URL before persisting.
	ProfileImage string `json:"profile_image,omitempty" validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
}

type UpdateProfileImageRequest struct {
	ProfileImage string `db:"profile_image" validate:"required"`
}

type AccountResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Role         string  `json:"role"`
	Active       bool    `json:"active"`
	LastLogin    *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *AccountResponse) FromModel(model model.Account) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.PhoneNumber = model.PhoneNumber
	r.Address = model.Address
	r.ProfileImage = model.ProfileImage
	r.Role = model.Role
	r.Active = model.Active
	r.LastLogin = model.LastLogin
	r.Metadata.FromModel(model.Metadata)
}

type GetAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAccountsResponse) FromModels(models []model.Account, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accounts = make([]AccountResponse, len(models))
	for i, mod := range models {
		r.Accounts[i].FromModel(mod)
	}
}
