package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/launchline/concierge/internal/domain"
)

// applicationService implements domain.ApplicationService.
type applicationService struct {
	repo    domain.ApplicationRepository
	clients domain.ClientRepository
	logger  *slog.Logger
}

// NewApplicationService creates an ApplicationService with the given
// collaborators.
func NewApplicationService(repo domain.ApplicationRepository, clients domain.ClientRepository, logger *slog.Logger) domain.ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &applicationService{repo: repo, clients: clients, logger: logger}
}

// CreateApplication validates and stores a new application. New applications
// start in the saved status unless the caller placed them further down the
// pipeline on a known status.
func (s *applicationService) CreateApplication(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	app.Company = strings.TrimSpace(app.Company)
	app.Position = strings.TrimSpace(app.Position)
	if app.Company == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "company is required", nil)
	}
	if app.Position == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "position is required", nil)
	}

	if app.Status == "" {
		app.Status = domain.ApplicationStatusSaved
	}
	switch app.Status {
	case domain.ApplicationStatusSaved, domain.ApplicationStatusApplied,
		domain.ApplicationStatusInterviewing, domain.ApplicationStatusOffer,
		domain.ApplicationStatusRejected, domain.ApplicationStatusWithdrawn:
	default:
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("unknown application status %q", app.Status), nil)
	}

	if _, err := s.clients.GetByID(ctx, app.ClientID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication retrieves an application by ID.
func (s *applicationService) GetApplication(ctx context.Context, id uint) (*domain.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// ListApplications returns a paginated list of applications.
func (s *applicationService) ListApplications(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.Application], error) {
	return s.repo.List(ctx, req, filters)
}

// TransitionApplication moves an application along the pipeline. The
// transition table is checked against the currently stored status, and the
// write itself is guarded on that status so a concurrent move surfaces as a
// conflict rather than a lost update.
func (s *applicationService) TransitionApplication(ctx context.Context, id uint, toStatus string) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionApplication(app.Status, toStatus) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("cannot move application from %s to %s", app.Status, toStatus), nil)
	}

	return s.repo.UpdateStatus(ctx, id, app.Status, toStatus)
}
