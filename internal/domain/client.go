package domain

import (
	"context"
	"time"
)

// Client statuses. These describe the coaching engagement, not the unlock
// state, which is tracked separately by ProfileUnlocked.
const (
	ClientStatusProspect = "prospect"
	ClientStatusActive   = "active"
	ClientStatusPaused   = "paused"
	ClientStatusClosed   = "closed"
)

// Client is a registered client of the coaching service.
type Client struct {
	BaseModel
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Status          string     `gorm:"size:20;not null;default:prospect" json:"status"`
	ProfileUnlocked bool       `gorm:"not null;default:false" json:"profile_unlocked"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"`
	UnlockedBy      *uint      `json:"unlocked_by,omitempty"`
}

// UnlockOutcome reports the result of an unlock action. EmailSent is true
// only when a notification was requested and the send succeeded.
type UnlockOutcome struct {
	Client    *Client `json:"client"`
	EmailSent bool    `json:"email_sent"`
}

// ClientRepository defines the data access interface for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	List(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[Client], error)
	// Unlock sets ProfileUnlocked and stamps UnlockedAt/UnlockedBy, but only
	// on the first unlock; unlocking an already-unlocked client leaves the
	// stamps untouched. It returns the post-unlock row.
	Unlock(ctx context.Context, id uint, actorID uint, at time.Time) (*Client, error)
}

// ClientService defines the business logic interface for clients.
type ClientService interface {
	CreateClient(ctx context.Context, name, email string) (*Client, error)
	GetClient(ctx context.Context, id uint) (*Client, error)
	ListClients(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[Client], error)
	UnlockAccount(ctx context.Context, id uint, actorID uint, sendNotification bool) (*UnlockOutcome, error)
}
