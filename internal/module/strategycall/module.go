package strategycall

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for strategy calls.
type Module struct {
	handler *CallHandler
}

// NewModule creates a strategy call Module. Panics if h is nil.
func NewModule(h *CallHandler) *Module {
	if h == nil {
		panic("strategycall.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers strategy call API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/strategy-calls", m.handler.Create)
	api.GET("/strategy-calls", m.handler.List)
	api.GET("/strategy-calls/:id", m.handler.Get)
	api.POST("/strategy-calls/:id/confirm", m.handler.Confirm)
	api.POST("/strategy-calls/:id/cancel", m.handler.Cancel)
	api.POST("/strategy-calls/:id/complete", m.handler.Complete)
}
