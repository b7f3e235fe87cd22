package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecopro_backend/internal/projects/service"
	"ecopro_backend/internal/projects/transport"
	"ecopro_backend/platform/httpkit"
	"ecopro_backend/platform/validator"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest       = "invalid request"
	msgValidationFailed     = "validation failed"
	msgInvalidProjectID     = "invalid project id"
	msgInvalidAssociationID = "invalid project product id"
)

// New creates a new projects handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListProjects retrieves projects.
// GET /api/v1/projects
func (h *Handler) ListProjects(c *gin.Context) {
	var req transport.ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListProjects(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProjectByID retrieves a project by ID.
// GET /api/v1/projects/:id
func (h *Handler) GetProjectByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	result, err := h.svc.GetProjectByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProject creates a new project.
// POST /api/v1/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req transport.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateProject(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProject updates a project.
// PUT /api/v1/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	var req transport.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateProject(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProject deletes a project.
// DELETE /api/v1/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteProject(c.Request.Context(), id)) {
		return
	}
	httpkit.JSON(c, http.StatusNoContent, nil)
}

// ListProjectProducts retrieves a project's product associations.
// GET /api/v1/projects/:id/products
func (h *Handler) ListProjectProducts(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	result, err := h.svc.ListProjectProducts(c.Request.Context(), projectID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddProjectProduct attaches a catalog product to a project.
// POST /api/v1/projects/:id/products
func (h *Handler) AddProjectProduct(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	var req transport.AddProjectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AddProjectProduct(c.Request.Context(), projectID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProjectProduct updates a project product association.
// PUT /api/v1/projects/:id/products/:associationId
func (h *Handler) UpdateProjectProduct(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}
	associationID, err := uuid.Parse(c.Param("associationId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAssociationID, nil)
		return
	}

	var req transport.UpdateProjectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateProjectProduct(c.Request.Context(), projectID, associationID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemoveProjectProduct detaches a product from a project.
// DELETE /api/v1/projects/:id/products/:associationId
func (h *Handler) RemoveProjectProduct(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}
	associationID, err := uuid.Parse(c.Param("associationId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAssociationID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.RemoveProjectProduct(c.Request.Context(), projectID, associationID)) {
		return
	}
	httpkit.JSON(c, http.StatusNoContent, nil)
}
