package transport

import (
	"github.com/google/uuid"

	"ecopro_backend/internal/cee"
)

type ComputePrimeRequest struct {
	DelegateID   string   `form:"delegateId" validate:"required,uuid"`
	Bonification *float64 `form:"bonification" validate:"omitempty,gt=0"`
}

type PrimeResponse struct {
	ProjectID    uuid.UUID           `json:"projectId"`
	DelegateID   uuid.UUID           `json:"delegateId"`
	DelegateName string              `json:"delegateName"`
	Bonification float64             `json:"bonification"`
	TotalPrime   *float64            `json:"totalPrime"`
	Products     []cee.ProductResult `json:"products"`
	Excluded     []cee.ExcludedLine  `json:"excluded,omitempty"`
}

type EnergyReportRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=draft accepted completed cancelled"`
	Fresh  bool   `form:"fresh"`
}

type EnergyReportResponse struct {
	Status     string               `json:"status,omitempty"`
	TotalMwh   float64              `json:"totalMwh"`
	Breakdown  []cee.CategoryEnergy `json:"breakdown"`
	ComputedAt string               `json:"computedAt"`
	FromCache  bool                 `json:"fromCache"`
}
