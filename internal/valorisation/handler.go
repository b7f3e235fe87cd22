package valorisation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecopro_backend/internal/valorisation/transport"
	"ecopro_backend/platform/httpkit"
	"ecopro_backend/platform/validator"
)

// Handler handles HTTP requests for valorisation.
type Handler struct {
	svc *Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidProjectID = "invalid project id"
)

// NewHandler creates a new valorisation handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ComputePrime evaluates a project's prime for a delegate.
// GET /api/v1/projects/:id/prime?delegateId=&bonification=
func (h *Handler) ComputePrime(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	var req transport.ComputePrimeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ComputePrime(c.Request.Context(), projectID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// EnergyReport returns the portfolio energy breakdown.
// GET /api/v1/reports/energy?status=&fresh=
func (h *Handler) EnergyReport(c *gin.Context) {
	var req transport.EnergyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.EnergyReport(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
