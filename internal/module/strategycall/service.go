package strategycall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchline/concierge/internal/domain"
)

// callService implements domain.StrategyCallService.
type callService struct {
	repo     domain.StrategyCallRepository
	clients  domain.ClientRepository
	notifier domain.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewCallService creates a StrategyCallService with the given collaborators.
// The client repository is used to resolve the requester's address for
// notifications.
func NewCallService(repo domain.StrategyCallRepository, clients domain.ClientRepository, notifier domain.Notifier, logger *slog.Logger) domain.StrategyCallService {
	if logger == nil {
		logger = slog.Default()
	}
	return &callService{
		repo:     repo,
		clients:  clients,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestCall creates a pending strategy-call request with the client's
// proposed slots.
func (s *callService) RequestCall(ctx context.Context, clientID uint, topic string, slots []time.Time) (*domain.StrategyCall, error) {
	if len(slots) == 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "at least one proposed slot is required", nil)
	}
	if len(slots) > domain.MaxProposedSlots {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("at most %d proposed slots are allowed", domain.MaxProposedSlots), nil)
	}
	for i, slot := range slots {
		if slot.IsZero() {
			return nil, domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("proposed slot %d is not a valid time", i), nil)
		}
	}

	// Requests reference an existing client; a dangling client id is a
	// client error, not a storage failure.
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	call := &domain.StrategyCall{
		ClientID:    clientID,
		Topic:       topic,
		Slots:       slots,
		Status:      domain.CallStatusPending,
		AdminStatus: domain.CallStatusPending,
	}
	if err := s.repo.Create(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// GetCall retrieves a strategy call by ID.
func (s *callService) GetCall(ctx context.Context, id uint) (*domain.StrategyCall, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCalls returns a paginated list of strategy calls.
func (s *callService) ListCalls(ctx context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.StrategyCall], error) {
	return s.repo.List(ctx, req, filters)
}

// ConfirmCall confirms a pending call on the slot the admin selected. The
// slot index is validated against the stored candidate list before anything
// is written, so an out-of-range index never mutates the request. The
// confirmation email is attempted only after the write is confirmed; a send
// failure is logged and swallowed.
func (s *callService) ConfirmCall(ctx context.Context, id uint, c domain.CallConfirmation) (*domain.StrategyCall, error) {
	call, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.SlotIndex < 0 || c.SlotIndex >= len(call.Slots) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid slot index %d: request has %d proposed slots", c.SlotIndex, len(call.Slots)), nil)
	}
	confirmedTime := call.Slots[c.SlotIndex]

	updated, err := s.repo.ConfirmPending(ctx, id, confirmedTime, c, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.notifyBestEffort(ctx, updated, "Your strategy call is confirmed",
		fmt.Sprintf("Your strategy call is confirmed for %s.", confirmedTime.Format(time.RFC1123)))

	return updated, nil
}

// CancelCall cancels a pending or confirmed call.
func (s *callService) CancelCall(ctx context.Context, id uint, actorID uint) (*domain.StrategyCall, error) {
	updated, err := s.repo.Transition(ctx, id,
		[]string{domain.CallStatusPending, domain.CallStatusConfirmed},
		domain.CallStatusCancelled, actorID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.notifyBestEffort(ctx, updated, "Your strategy call was cancelled",
		"Your strategy call request has been cancelled. Reply to this email to rebook.")

	return updated, nil
}

// CompleteCall marks a confirmed call as completed. No notification; the
// call already happened.
func (s *callService) CompleteCall(ctx context.Context, id uint, actorID uint) (*domain.StrategyCall, error) {
	return s.repo.Transition(ctx, id,
		[]string{domain.CallStatusConfirmed},
		domain.CallStatusCompleted, actorID, s.now().UTC())
}

// notifyBestEffort resolves the requester and attempts the notification.
// Failures at any step are logged and swallowed; the state change already
// committed and must stand.
func (s *callService) notifyBestEffort(ctx context.Context, call *domain.StrategyCall, subject, body string) {
	client, err := s.clients.GetByID(ctx, call.ClientID)
	if err != nil {
		s.logger.WarnContext(ctx, "call notification skipped: requester lookup failed",
			slog.Uint64("call_id", uint64(call.ID)),
			slog.Uint64("client_id", uint64(call.ClientID)),
			slog.Any("error", err),
		)
		return
	}

	msg := domain.Message{
		To:      client.Email,
		Subject: subject,
		Body:    fmt.Sprintf("Hi %s,\n\n%s\n\n— The Concierge Team\n", client.Name, body),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "call notification failed",
			slog.Uint64("call_id", uint64(call.ID)),
			slog.String("to", client.Email),
			slog.Any("error", err),
		)
	}
}
