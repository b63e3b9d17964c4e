package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/launchline/concierge/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the Application table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Application{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedApp(t *testing.T, repo domain.ApplicationRepository, status string) *domain.Application {
	t.Helper()
	app := &domain.Application{
		ClientID:  1,
		Company:   "Acme",
		Position:  "Staff Engineer",
		Status:    status,
		CreatedBy: 7,
	}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func TestUpdateStatus_GuardedTransition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	app := seedApp(t, repo, domain.ApplicationStatusSaved)

	got, err := repo.UpdateStatus(ctx, app.ID, domain.ApplicationStatusSaved, domain.ApplicationStatusApplied)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != domain.ApplicationStatusApplied {
		t.Errorf("Status=%q; want applied", got.Status)
	}

	// Guard on the stale status must now fail with a conflict.
	_, err = repo.UpdateStatus(ctx, app.ID, domain.ApplicationStatusSaved, domain.ApplicationStatusWithdrawn)
	if !domain.IsConflict(err) {
		t.Errorf("expected conflict on stale guard, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.UpdateStatus(context.Background(), 999, domain.ApplicationStatusSaved, domain.ApplicationStatusApplied)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_OwnerFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	coach := uint(9)
	for i := 1; i <= 8; i++ {
		app := &domain.Application{
			ClientID:  uint(i),
			Company:   fmt.Sprintf("Company %d", i),
			Position:  "Engineer",
			Status:    domain.ApplicationStatusApplied,
			CreatedBy: uint(i%2 + 1),
		}
		if i <= 3 {
			app.AssignedTo = &coach
		}
		if err := repo.Create(ctx, app); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	req := domain.PageRequest{Limit: 20, Page: 1, Sort: "id", Order: "asc"}

	res, err := repo.List(ctx, req, domain.FilterSet{CreatedBy: "1"})
	if err != nil {
		t.Fatalf("List by created_by: %v", err)
	}
	if res.Pagination.Total != 4 {
		t.Errorf("created_by Total=%d; want 4", res.Pagination.Total)
	}

	res, err = repo.List(ctx, req, domain.FilterSet{AssignedTo: "9"})
	if err != nil {
		t.Fatalf("List by assigned_to: %v", err)
	}
	if res.Pagination.Total != 3 {
		t.Errorf("assigned_to Total=%d; want 3", res.Pagination.Total)
	}
}

func TestList_DateRangeFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		app := seedApp(t, repo, domain.ApplicationStatusSaved)
		created := base.AddDate(0, 0, i)
		if err := db.Model(app).Update("created_at", created).Error; err != nil {
			t.Fatalf("backdate %d: %v", i, err)
		}
	}

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	req := domain.PageRequest{Limit: 20, Page: 1, Sort: "id", Order: "asc"}

	res, err := repo.List(ctx, req, domain.FilterSet{DateFrom: &from, DateTo: &to})
	if err != nil {
		t.Fatalf("List by date range: %v", err)
	}
	if res.Pagination.Total != 3 {
		t.Errorf("date range Total=%d; want 3", res.Pagination.Total)
	}
}

func TestList_SearchCompanyAndPosition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	apps := []domain.Application{
		{ClientID: 1, Company: "Globex", Position: "Backend Engineer", Status: domain.ApplicationStatusSaved, CreatedBy: 1},
		{ClientID: 2, Company: "Initech", Position: "Engineering Manager", Status: domain.ApplicationStatusSaved, CreatedBy: 1},
		{ClientID: 3, Company: "Hooli", Position: "Designer", Status: domain.ApplicationStatusSaved, CreatedBy: 1},
	}
	for i := range apps {
		if err := repo.Create(ctx, &apps[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := domain.PageRequest{Limit: 20, Page: 1, Sort: "id", Order: "asc"}
	res, err := repo.List(ctx, req, domain.FilterSet{Search: "engineer"})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if res.Pagination.Total != 2 {
		t.Errorf("search Total=%d; want 2 (position matches)", res.Pagination.Total)
	}
}
