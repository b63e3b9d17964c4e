package application

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for job applications.
type Module struct {
	handler *ApplicationHandler
}

// NewModule creates an application Module. Panics if h is nil.
func NewModule(h *ApplicationHandler) *Module {
	if h == nil {
		panic("application.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers application API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/applications", m.handler.Create)
	api.GET("/applications", m.handler.List)
	api.GET("/applications/:id", m.handler.Get)
	api.PATCH("/applications/:id/status", m.handler.UpdateStatus)
}
