package strategycall

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// Allowed fields for sorting, filtering, and searching in List queries.
var (
	allowedSortFields   = []string{"id", "client_id", "status", "confirmed_time", "created_at", "updated_at"}
	allowedFilterFields = []string{"status"}
	searchFields        = []string{"topic", "notes"}
)

// callRepository implements domain.StrategyCallRepository using GORM.
type callRepository struct {
	db *gorm.DB
}

// NewCallRepository creates a StrategyCallRepository backed by the given database.
func NewCallRepository(db *gorm.DB) domain.StrategyCallRepository {
	return &callRepository{db: db}
}

// Create inserts a new strategy-call request.
func (r *callRepository) Create(ctx context.Context, call *domain.StrategyCall) error {
	if err := r.db.WithContext(ctx).Create(call).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a strategy call by primary key.
func (r *callRepository) GetByID(ctx context.Context, id uint) (*domain.StrategyCall, error) {
	var call domain.StrategyCall
	if err := r.db.WithContext(ctx).First(&call, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &call, nil
}

// List returns a paginated, filtered page of strategy calls.
func (r *callRepository) List(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.StrategyCall], error) {
	return pkg.FindPage[domain.StrategyCall](r.db.WithContext(ctx), req, filters, allowedFilterFields, searchFields)
}

// ConfirmPending confirms a pending call with the chosen slot. The update is
// guarded on the current status, so a call that was cancelled or confirmed
// in the meantime is reported as a conflict instead of being overwritten.
func (r *callRepository) ConfirmPending(ctx context.Context, id uint, confirmedTime time.Time, c domain.CallConfirmation, at time.Time) (*domain.StrategyCall, error) {
	updates := map[string]any{
		"status":         domain.CallStatusConfirmed,
		"admin_status":   domain.CallStatusConfirmed,
		"confirmed_time": confirmedTime,
		"action_by":      c.ActorID,
		"action_at":      at,
	}
	if c.MeetingLink != "" {
		updates["meeting_link"] = c.MeetingLink
	}
	if c.Notes != "" {
		updates["notes"] = c.Notes
	}

	return r.guardedUpdate(ctx, id, []string{domain.CallStatusPending}, updates)
}

// Transition moves a call from one of fromStatuses to toStatus, stamping the
// actor and time. Zero rows affected is a conflict (or not-found when the
// row is gone).
func (r *callRepository) Transition(ctx context.Context, id uint, fromStatuses []string, toStatus string, actorID uint, at time.Time) (*domain.StrategyCall, error) {
	return r.guardedUpdate(ctx, id, fromStatuses, map[string]any{
		"status":       toStatus,
		"admin_status": toStatus,
		"action_by":    actorID,
		"action_at":    at,
	})
}

// guardedUpdate runs the conditional status update and distinguishes
// not-found from concurrent-transition when nothing was written.
func (r *callRepository) guardedUpdate(ctx context.Context, id uint, fromStatuses []string, updates map[string]any) (*domain.StrategyCall, error) {
	res := r.db.WithContext(ctx).Model(&domain.StrategyCall{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if res.Error != nil {
		return nil, pkg.MapDBError(res.Error)
	}

	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewAppError(domain.CodeConflict,
			fmt.Sprintf("call %d is %s and cannot be updated from this state", id, current.Status), nil)
	}

	return r.GetByID(ctx, id)
}
