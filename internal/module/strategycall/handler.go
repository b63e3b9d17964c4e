package strategycall

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// CallHandler handles REST API requests for strategy calls.
type CallHandler struct {
	svc domain.StrategyCallService
}

// NewCallHandler creates a CallHandler with the given service.
func NewCallHandler(svc domain.StrategyCallService) *CallHandler {
	return &CallHandler{svc: svc}
}

// Create handles POST /api/v1/strategy-calls.
func (h *CallHandler) Create(c *gin.Context) {
	var req CreateCallRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	call, err := h.svc.RequestCall(c.Request.Context(), req.ClientID, req.Topic, req.Slots)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, call)
}

// Get handles GET /api/v1/strategy-calls/:id.
func (h *CallHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	call, err := h.svc.GetCall(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, call)
}

// List handles GET /api/v1/strategy-calls.
func (h *CallHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c, allowedSortFields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	filters := pkg.ParseFilters(c)

	result, err := h.svc.ListCalls(c.Request.Context(), req, filters)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Confirm handles POST /api/v1/strategy-calls/:id/confirm.
func (h *CallHandler) Confirm(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ConfirmCallRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	call, err := h.svc.ConfirmCall(c.Request.Context(), id, domain.CallConfirmation{
		SlotIndex:   *req.SelectedSlotIndex,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
		ActorID:     req.ActorID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, call)
}

// Cancel handles POST /api/v1/strategy-calls/:id/cancel.
func (h *CallHandler) Cancel(c *gin.Context) {
	h.action(c, h.svc.CancelCall)
}

// Complete handles POST /api/v1/strategy-calls/:id/complete.
func (h *CallHandler) Complete(c *gin.Context) {
	h.action(c, h.svc.CompleteCall)
}

// action shares the shape of the cancel/complete endpoints.
func (h *CallHandler) action(c *gin.Context, fn func(ctx context.Context, id, actorID uint) (*domain.StrategyCall, error)) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ActionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	call, err := fn(c.Request.Context(), id, req.ActorID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, call)
}
