package domain

import "context"

// Application pipeline statuses, in rough pipeline order. Rejected and
// withdrawn are terminal; an offer can still be withdrawn by the client.
const (
	ApplicationStatusSaved        = "saved"
	ApplicationStatusApplied      = "applied"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOffer        = "offer"
	ApplicationStatusRejected     = "rejected"
	ApplicationStatusWithdrawn    = "withdrawn"
)

// applicationTransitions is the allowed-transition table for the application
// pipeline.
var applicationTransitions = map[string][]string{
	ApplicationStatusSaved:        {ApplicationStatusApplied, ApplicationStatusWithdrawn},
	ApplicationStatusApplied:      {ApplicationStatusInterviewing, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewing: {ApplicationStatusOffer, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusOffer:        {ApplicationStatusWithdrawn},
}

// CanTransitionApplication reports whether a job application may move from
// one pipeline status to another.
func CanTransitionApplication(from, to string) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application is a tracked job application for a client.
type Application struct {
	BaseModel
	ClientID   uint   `gorm:"index;not null" json:"client_id"`
	Company    string `gorm:"size:255;not null" json:"company"`
	Position   string `gorm:"size:255;not null" json:"position"`
	Status     string `gorm:"size:20;not null;default:saved" json:"status"`
	CreatedBy  uint   `gorm:"index" json:"created_by"`
	AssignedTo *uint  `gorm:"index" json:"assigned_to,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`
}

// ApplicationRepository defines the data access interface for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uint) (*Application, error)
	List(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[Application], error)
	// UpdateStatus performs a guarded conditional update from fromStatus to
	// toStatus, reporting ErrConflict when the row moved in the meantime.
	UpdateStatus(ctx context.Context, id uint, fromStatus, toStatus string) (*Application, error)
}

// ApplicationService defines the business logic interface for applications.
type ApplicationService interface {
	CreateApplication(ctx context.Context, app *Application) (*Application, error)
	GetApplication(ctx context.Context, id uint) (*Application, error)
	ListApplications(ctx context.Context, req PageRequest, filters FilterSet) (*PageResult[Application], error)
	TransitionApplication(ctx context.Context, id uint, toStatus string) (*Application, error)
}
