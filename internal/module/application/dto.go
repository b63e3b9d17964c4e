package application

// CreateApplicationRequest is the request body for creating an application.
type CreateApplicationRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	Company    string `json:"company" binding:"required,max=255"`
	Position   string `json:"position" binding:"required,max=255"`
	Status     string `json:"status" binding:"omitempty,oneof=saved applied interviewing offer rejected withdrawn"`
	CreatedBy  uint   `json:"created_by" binding:"required"`
	AssignedTo *uint  `json:"assigned_to"`
	Notes      string `json:"notes"`
}

// UpdateStatusRequest is the request body for moving an application along
// the pipeline.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=saved applied interviewing offer rejected withdrawn"`
}
