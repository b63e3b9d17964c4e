package client

// CreateClientRequest is the input for registering a new client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// UnlockRequest is the input for the account-unlock action. SendNotification
// defaults to true when omitted.
type UnlockRequest struct {
	ActorID          uint  `json:"actor_id" binding:"required"`
	SendNotification *bool `json:"send_notification"`
}
