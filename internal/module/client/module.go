package client

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the client domain.
type Module struct {
	handler *ClientHandler
}

// NewModule creates a client Module. Panics if h is nil.
func NewModule(h *ClientHandler) *Module {
	if h == nil {
		panic("client.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers client API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/clients", m.handler.Create)
	api.GET("/clients", m.handler.List)
	api.GET("/clients/:id", m.handler.Get)
	api.POST("/clients/:id/unlock", m.handler.Unlock)
}
