package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Strategy call statuses. A request starts pending, an admin confirms one of
// the proposed slots, and the call is completed after it takes place.
// Cancellation is allowed from pending or confirmed. Completed and cancelled
// are terminal.
const (
	CallStatusPending   = "pending"
	CallStatusConfirmed = "confirmed"
	CallStatusCancelled = "cancelled"
	CallStatusCompleted = "completed"
)

// callTransitions is the allowed-transition table for strategy calls.
var callTransitions = map[string][]string{
	CallStatusPending:   {CallStatusConfirmed, CallStatusCancelled},
	CallStatusConfirmed: {CallStatusCompleted, CallStatusCancelled},
}

// CanTransitionCall reports whether a strategy call may move from one status
// to another.
func CanTransitionCall(from, to string) bool {
	for _, next := range callTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MaxProposedSlots caps how many candidate times a client may propose per
// booking request.
const MaxProposedSlots = 3

// SlotList stores the candidate call times proposed by the client. It is
// persisted as a JSON array so the whole request stays a single row.
type SlotList []time.Time

// Value implements driver.Valuer.
func (s SlotList) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SlotList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("slotlist: cannot scan %T", value)
	}
}

// StrategyCall is a client's strategy-call booking request.
type StrategyCall struct {
	BaseModel
	ClientID      uint       `gorm:"index;not null" json:"client_id"`
	Topic         string     `gorm:"size:255" json:"topic"`
	Slots         SlotList   `gorm:"type:text;not null" json:"slots"`
	Status        string     `gorm:"size:20;not null;default:pending" json:"status"`
	AdminStatus   string     `gorm:"size:20;not null;default:pending" json:"admin_status"`
	ConfirmedTime *time.Time `json:"confirmed_time,omitempty"`
	MeetingLink   string     `gorm:"size:512" json:"meeting_link,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	ActionBy      *uint      `json:"action_by,omitempty"`
	ActionAt      *time.Time `json:"action_at,omitempty"`
}

// CallConfirmation carries the admin's confirm inputs.
type CallConfirmation struct {
	SlotIndex   int
	MeetingLink string
	Notes       string
	ActorID     uint
}

// StrategyCallRepository defines the data access interface for strategy calls.
// The transition methods perform guarded conditional updates: the write only
// lands when the row is still in a status the transition allows, and zero
// rows affected is reported as ErrConflict (or ErrNotFound when the row is
// gone).
type StrategyCallRepository interface {
	Create(ctx context.Context, call *StrategyCall) error
	GetByID(ctx context.Context, id uint) (*StrategyCall, error)
	List(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[StrategyCall], error)
	ConfirmPending(ctx context.Context, id uint, confirmedTime time.Time, c CallConfirmation, at time.Time) (*StrategyCall, error)
	Transition(ctx context.Context, id uint, fromStatuses []string, toStatus string, actorID uint, at time.Time) (*StrategyCall, error)
}

// StrategyCallService defines the business logic interface for strategy calls.
type StrategyCallService interface {
	RequestCall(ctx context.Context, clientID uint, topic string, slots []time.Time) (*StrategyCall, error)
	GetCall(ctx context.Context, id uint) (*StrategyCall, error)
	ListCalls(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[StrategyCall], error)
	ConfirmCall(ctx context.Context, id uint, c CallConfirmation) (*StrategyCall, error)
	CancelCall(ctx context.Context, id uint, actorID uint) (*StrategyCall, error)
	CompleteCall(ctx context.Context, id uint, actorID uint) (*StrategyCall, error)
}
