package application

import (
	"github.com/gin-gonic/gin"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// ApplicationHandler handles REST API requests for job applications.
type ApplicationHandler struct {
	svc domain.ApplicationService
}

// NewApplicationHandler creates an ApplicationHandler with the given service.
func NewApplicationHandler(svc domain.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Create handles POST /api/v1/applications.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	app, err := h.svc.CreateApplication(c.Request.Context(), &domain.Application{
		ClientID:   req.ClientID,
		Company:    req.Company,
		Position:   req.Position,
		Status:     req.Status,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, app)
}

// Get handles GET /api/v1/applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	app, err := h.svc.GetApplication(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, app)
}

// List handles GET /api/v1/applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c, allowedSortFields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	filters := pkg.ParseFilters(c)

	result, err := h.svc.ListApplications(c.Request.Context(), req, filters)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// UpdateStatus handles PATCH /api/v1/applications/:id/status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	app, err := h.svc.TransitionApplication(c.Request.Context(), id, req.Status)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, app)
}
