package strategycall

import "time"

// CreateCallRequest is the input for booking a strategy call.
type CreateCallRequest struct {
	ClientID uint        `json:"client_id" binding:"required"`
	Topic    string      `json:"topic" binding:"max=255"`
	Slots    []time.Time `json:"slots" binding:"required,min=1,max=3"`
}

// ConfirmCallRequest is the admin's confirm input. SelectedSlotIndex is a
// pointer so index 0 survives required-field validation.
type ConfirmCallRequest struct {
	SelectedSlotIndex *int   `json:"selected_slot_index" binding:"required"`
	MeetingLink       string `json:"meeting_link" binding:"omitempty,url"`
	Notes             string `json:"notes"`
	ActorID           uint   `json:"actor_id" binding:"required"`
}

// ActionRequest is the input for cancel/complete actions.
type ActionRequest struct {
	ActorID uint `json:"actor_id" binding:"required"`
}
