package dto

import (
	"chicstation/internal/domains/catalog/model"
)

type ServiceResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
}

type GetServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

func (r *GetServicesResponse) FromModels(models []model.Service) {
	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
