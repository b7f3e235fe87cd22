package transport

import "github.com/google/uuid"

// ParamField describes one dynamic input of a product's parameter schema.
type ParamField struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Label string `json:"label,omitempty" validate:"max=200"`
	Unit  string `json:"unit,omitempty" validate:"max=20"`
}

// KwhCumacEntry is one row of the per-building-type savings table. Flat
// products set KwhCumac; surface-banded products set the LT400/GTE400 pair.
type KwhCumacEntry struct {
	BuildingType   string   `json:"buildingType" validate:"required,min=1,max=100"`
	KwhCumac       float64  `json:"kwhCumac,omitempty" validate:"min=0"`
	KwhCumacLT400  *float64 `json:"kwhCumacLt400,omitempty" validate:"omitempty,min=0"`
	KwhCumacGTE400 *float64 `json:"kwhCumacGte400,omitempty" validate:"omitempty,min=0"`
}

type CreateProductRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=50"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category" validate:"max=100"`
	IsActive       *bool           `json:"isActive,omitempty"`
	ParamsSchema   []ParamField    `json:"paramsSchema" validate:"omitempty,dive"`
	KwhCumacValues []KwhCumacEntry `json:"kwhCumacValues" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Code           *string         `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name           *string         `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category       *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	IsActive       *bool           `json:"isActive,omitempty"`
	ParamsSchema   []ParamField    `json:"paramsSchema,omitempty" validate:"omitempty,dive"`
	KwhCumacValues []KwhCumacEntry `json:"kwhCumacValues,omitempty" validate:"omitempty,dive"`
}

type ListProductsRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Category  string `form:"category" validate:"omitempty,max=100"`
	Active    string `form:"active" validate:"omitempty,oneof=true false"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=code name category createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	IsActive       bool            `json:"isActive"`
	ParamsSchema   []ParamField    `json:"paramsSchema"`
	KwhCumacValues []KwhCumacEntry `json:"kwhCumacValues"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
