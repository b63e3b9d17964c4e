package application

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// Allowed fields for sorting, filtering, and searching in List queries.
var (
	allowedSortFields   = []string{"id", "client_id", "company", "position", "status", "created_at", "updated_at"}
	allowedFilterFields = []string{"status", "created_by", "assigned_to"}
	searchFields        = []string{"company", "position"}
)

// applicationRepository implements domain.ApplicationRepository using GORM.
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates an ApplicationRepository backed by the
// given database.
func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves an application by primary key.
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &app, nil
}

// List returns a paginated, filtered page of applications.
func (r *applicationRepository) List(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.Application], error) {
	return pkg.FindPage[domain.Application](r.db.WithContext(ctx), req, filters, allowedFilterFields, searchFields)
}

// UpdateStatus moves an application from fromStatus to toStatus with a
// status-guarded update. Zero rows affected means the row moved under us
// (conflict) or is gone (not found).
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, fromStatus, toStatus string) (*domain.Application, error) {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return nil, pkg.MapDBError(res.Error)
	}

	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewAppError(domain.CodeConflict,
			fmt.Sprintf("application %d is %s, not %s", id, current.Status, fromStatus), nil)
	}

	return r.GetByID(ctx, id)
}
