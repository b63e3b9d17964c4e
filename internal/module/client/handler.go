package client

import (
	"github.com/gin-gonic/gin"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// ClientHandler handles REST API requests for the client resource.
type ClientHandler struct {
	svc domain.ClientService
}

// NewClientHandler creates a ClientHandler with the given service.
func NewClientHandler(svc domain.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, client)
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	client, err := h.svc.GetClient(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, client)
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c, allowedSortFields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	filters := pkg.ParseFilters(c)

	result, err := h.svc.ListClients(c.Request.Context(), req, filters)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Unlock handles POST /api/v1/clients/:id/unlock.
func (h *ClientHandler) Unlock(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UnlockRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	sendNotification := true
	if req.SendNotification != nil {
		sendNotification = *req.SendNotification
	}

	outcome, err := h.svc.UnlockAccount(c.Request.Context(), id, req.ActorID, sendNotification)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, outcome)
}
