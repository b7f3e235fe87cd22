package transport

import "github.com/google/uuid"

type CreateProjectRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=200"`
	BuildingType      string   `json:"buildingType" validate:"max=100"`
	SurfaceBatimentM2 *float64 `json:"surfaceBatimentM2,omitempty" validate:"omitempty,gt=0"`
	Status            string   `json:"status" validate:"omitempty,oneof=draft accepted completed cancelled"`
}

type UpdateProjectRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	BuildingType      *string  `json:"buildingType,omitempty" validate:"omitempty,max=100"`
	SurfaceBatimentM2 *float64 `json:"surfaceBatimentM2,omitempty" validate:"omitempty,gt=0"`
	Status            *string  `json:"status,omitempty" validate:"omitempty,oneof=draft accepted completed cancelled"`
}

type ListProjectsRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Status    string `form:"status" validate:"omitempty,oneof=draft accepted completed cancelled"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name status buildingType createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProjectResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	BuildingType      string    `json:"buildingType"`
	SurfaceBatimentM2 *float64  `json:"surfaceBatimentM2,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         string    `json:"createdAt"`
	UpdatedAt         string    `json:"updatedAt"`
}

type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Project products

type AddProjectProductRequest struct {
	ProductID     uuid.UUID      `json:"productId" validate:"required"`
	Quantity      *float64       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	DynamicParams map[string]any `json:"dynamicParams,omitempty"`
}

type UpdateProjectProductRequest struct {
	Quantity      *float64       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	DynamicParams map[string]any `json:"dynamicParams,omitempty"`
}

type ProjectProductResponse struct {
	ID            uuid.UUID      `json:"id"`
	ProjectID     uuid.UUID      `json:"projectId"`
	ProductID     uuid.UUID      `json:"productId"`
	Quantity      *float64       `json:"quantity,omitempty"`
	DynamicParams map[string]any `json:"dynamicParams,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

type ProjectProductListResponse struct {
	Items []ProjectProductResponse `json:"items"`
}
