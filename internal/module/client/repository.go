package client

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/launchline/concierge/internal/domain"
	"github.com/launchline/concierge/internal/pkg"
)

// Allowed fields for sorting, filtering, and searching in List queries.
var (
	allowedSortFields   = []string{"id", "name", "email", "status", "created_at", "updated_at"}
	allowedFilterFields = []string{"status"}
	searchFields        = []string{"name", "email"}
)

// clientRepository implements domain.ClientRepository using GORM.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a ClientRepository backed by the given database.
func NewClientRepository(db *gorm.DB) domain.ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client.
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a client by primary key.
func (r *clientRepository) GetByID(ctx context.Context, id uint) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &client, nil
}

// List returns a paginated, filtered page of clients.
func (r *clientRepository) List(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.Client], error) {
	return pkg.FindPage[domain.Client](r.db.WithContext(ctx), req, filters, allowedFilterFields, searchFields)
}

// Unlock marks the client's profile as unlocked. The unlock is idempotent:
// an already-unlocked client is returned unchanged, and the unlocked_at /
// unlocked_by stamps are written only by the first unlock to land.
func (r *clientRepository) Unlock(ctx context.Context, id uint, actorID uint, at time.Time) (*domain.Client, error) {
	var client domain.Client
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&client, id).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if client.ProfileUnlocked {
			return nil
		}

		res := tx.Model(&domain.Client{}).
			Where("id = ? AND profile_unlocked = ?", id, false).
			Updates(map[string]any{
				"profile_unlocked": true,
				"unlocked_at":      at,
				"unlocked_by":      actorID,
			})
		if res.Error != nil {
			return pkg.MapDBError(res.Error)
		}
		// Zero rows means another admin unlocked between the read and the
		// write. The outcome is identical, so reload and report success.
		if err := tx.First(&client, id).Error; err != nil {
			return pkg.MapDBError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}
