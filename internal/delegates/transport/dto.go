package transport

import "github.com/google/uuid"

type CreateDelegateRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	PriceEURPerMWh float64 `json:"priceEurPerMwh" validate:"required,gt=0"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

type UpdateDelegateRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	PriceEURPerMWh *float64 `json:"priceEurPerMwh,omitempty" validate:"omitempty,gt=0"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

type ListDelegatesRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Active   string `form:"active" validate:"omitempty,oneof=true false"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type DelegateResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PriceEURPerMWh float64   `json:"priceEurPerMwh"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

type DelegateListResponse struct {
	Items      []DelegateResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
