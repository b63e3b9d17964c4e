package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/launchline/concierge/internal/domain"
)

// clientService implements domain.ClientService.
type clientService struct {
	repo     domain.ClientRepository
	notifier domain.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewClientService creates a ClientService with the given collaborators.
func NewClientService(repo domain.ClientRepository, notifier domain.Notifier, logger *slog.Logger) domain.ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clientService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateClient validates input, builds a Client, and persists it.
func (s *clientService) CreateClient(ctx context.Context, name, email string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validateNameEmail(name, email); err != nil {
		return nil, err
	}

	client := &domain.Client{
		Name:   name,
		Email:  email,
		Status: domain.ClientStatusProspect,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID.
func (s *clientService) GetClient(ctx context.Context, id uint) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// ListClients returns a paginated list of clients.
func (s *clientService) ListClients(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.Client], error) {
	return s.repo.List(ctx, req, filters)
}

// UnlockAccount unlocks the client's profile and sends the unlock
// notification. The persistence write is confirmed before the notification
// is attempted; a send failure is logged and never rolls the unlock back.
// Unlocking an already-unlocked account reports success and, when requested,
// re-sends the notification.
func (s *clientService) UnlockAccount(ctx context.Context, id uint, actorID uint, sendNotification bool) (*domain.UnlockOutcome, error) {
	client, err := s.repo.Unlock(ctx, id, actorID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	emailSent := false
	if sendNotification {
		msg := domain.Message{
			To:      client.Email,
			Subject: "Your profile has been unlocked",
			Body: fmt.Sprintf("Hi %s,\n\nYour profile is now unlocked and your dashboard is ready to use.\n\n— The Concierge Team\n",
				client.Name),
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "unlock notification failed",
				slog.Uint64("client_id", uint64(client.ID)),
				slog.Any("error", err),
			)
		} else {
			emailSent = true
		}
	}

	return &domain.UnlockOutcome{Client: client, EmailSent: emailSent}, nil
}

// validateNameEmail checks that name and email are usable.
func validateNameEmail(name, email string) error {
	if name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(name) < 2 {
		return domain.NewAppError(domain.CodeValidation, "name must be at least 2 characters", nil)
	}
	if utf8.RuneCountInString(name) > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}

	if email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	return nil
}
