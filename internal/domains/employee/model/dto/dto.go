package dto

import (
	"chicstation/internal/domains/employee/model"
	"chicstation/shared"
	gModel "chicstation/shared/model"
	"chicstation/shared/timezone"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateEmployeeRequest) ToModel(createdBy string) model.Employee {
	return model.Employee{
		ID:     uuid.NewString(),
		Name:   r.Name,
		Active: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type EmployeeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (r *EmployeeResponse) FromModel(model model.Employee) {
	r.ID = model.ID
	r.Name = model.Name
	r.Active = model.Active
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}
