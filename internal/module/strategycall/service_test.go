package strategycall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/launchline/concierge/internal/domain"
)

// --- mock call repository ---

type mockCallRepo struct {
	calls  map[uint]*domain.StrategyCall
	nextID uint
	// hooks for error injection
	createErr  error
	confirmErr error
}

func newMockCallRepo() *mockCallRepo {
	return &mockCallRepo{calls: make(map[uint]*domain.StrategyCall), nextID: 1}
}

func (m *mockCallRepo) Create(_ context.Context, call *domain.StrategyCall) error {
	if m.createErr != nil {
		return m.createErr
	}
	call.ID = m.nextID
	m.nextID++
	m.calls[call.ID] = call
	return nil
}

func (m *mockCallRepo) GetByID(_ context.Context, id uint) (*domain.StrategyCall, error) {
	call, ok := m.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *call
	return &cp, nil
}

func (m *mockCallRepo) List(_ context.Context, req domain.PageRequest, filters domain.FilterSet) (*domain.PageResult[domain.StrategyCall], error) {
	items := make([]domain.StrategyCall, 0, len(m.calls))
	for _, call := range m.calls {
		items = append(items, *call)
	}
	return &domain.PageResult[domain.StrategyCall]{
		Data:       items,
		Pagination: domain.PaginationMeta{Total: int64(len(items)), Limit: req.Limit, Page: req.Page},
		Filters:    filters,
	}, nil
}

func (m *mockCallRepo) ConfirmPending(_ context.Context, id uint, confirmedTime time.Time, c domain.CallConfirmation, at time.Time) (*domain.StrategyCall, error) {
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	call, ok := m.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if call.Status != domain.CallStatusPending {
		return nil, domain.NewAppError(domain.CodeConflict,
			fmt.Sprintf("call %d is %s and cannot be updated from this state", id, call.Status), nil)
	}
	call.Status = domain.CallStatusConfirmed
	call.AdminStatus = domain.CallStatusConfirmed
	call.ConfirmedTime = &confirmedTime
	if c.MeetingLink != "" {
		call.MeetingLink = c.MeetingLink
	}
	if c.Notes != "" {
		call.Notes = c.Notes
	}
	call.ActionBy = &c.ActorID
	call.ActionAt = &at
	cp := *call
	return &cp, nil
}

func (m *mockCallRepo) Transition(_ context.Context, id uint, fromStatuses []string, toStatus string, actorID uint, at time.Time) (*domain.StrategyCall, error) {
	call, ok := m.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !slices.Contains(fromStatuses, call.Status) {
		return nil, domain.NewAppError(domain.CodeConflict,
			fmt.Sprintf("call %d is %s and cannot be updated from this state", id, call.Status), nil)
	}
	call.Status = toStatus
	call.AdminStatus = toStatus
	call.ActionBy = &actorID
	call.ActionAt = &at
	cp := *call
	return &cp, nil
}

// --- mock client repository (lookup only) ---

type mockClientLookup struct {
	clients map[uint]*domain.Client
}

func (m *mockClientLookup) Create(_ context.Context, _ *domain.Client) error { return nil }

func (m *mockClientLookup) GetByID(_ context.Context, id uint) (*domain.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockClientLookup) List(_ context.Context, _ domain.PageRequest, _ domain.FilterSet) (*domain.PageResult[domain.Client], error) {
	return &domain.PageResult[domain.Client]{}, nil
}

func (m *mockClientLookup) Unlock(_ context.Context, _ uint, _ uint, _ time.Time) (*domain.Client, error) {
	return nil, domain.ErrNotFound
}

// --- mock notifier ---

type mockNotifier struct {
	sent    []domain.Message
	sendErr error
}

func (m *mockNotifier) Send(_ context.Context, msg domain.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(repo domain.StrategyCallRepository, notifier domain.Notifier) domain.StrategyCallService {
	clients := &mockClientLookup{clients: map[uint]*domain.Client{
		1: {BaseModel: domain.BaseModel{ID: 1}, Name: "Alice", Email: "alice@example.com"},
	}}
	return NewCallService(repo, clients, notifier, slog.Default())
}

func twoSlots() []time.Time {
	return []time.Time{
		time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
	}
}

func TestRequestCall_CreatesPending(t *testing.T) {
	repo := newMockCallRepo()
	svc := newTestService(repo, &mockNotifier{})

	call, err := svc.RequestCall(context.Background(), 1, "Offer negotiation", twoSlots())
	if err != nil {
		t.Fatalf("RequestCall: %v", err)
	}
	if call.Status != domain.CallStatusPending {
		t.Errorf("Status=%q; want pending", call.Status)
	}
	if len(call.Slots) != 2 {
		t.Errorf("len(Slots)=%d; want 2", len(call.Slots))
	}
}

func TestRequestCall_SlotValidation(t *testing.T) {
	svc := newTestService(newMockCallRepo(), &mockNotifier{})
	ctx := context.Background()

	four := append(twoSlots(), twoSlots()...)
	cases := []struct {
		name  string
		slots []time.Time
	}{
		{"no slots", nil},
		{"too many slots", four},
		{"zero time", []time.Time{{}}},
	}
	for _, tc := range cases {
		if _, err := svc.RequestCall(ctx, 1, "t", tc.slots); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestRequestCall_UnknownClient(t *testing.T) {
	svc := newTestService(newMockCallRepo(), &mockNotifier{})

	_, err := svc.RequestCall(context.Background(), 42, "t", twoSlots())
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound for unknown client, got %v", err)
	}
}

func TestConfirmCall_SelectsStoredSlot(t *testing.T) {
	repo := newMockCallRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	call, err := svc.RequestCall(ctx, 1, "Offer negotiation", twoSlots())
	if err != nil {
		t.Fatalf("RequestCall: %v", err)
	}

	got, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: 1, ActorID: 7})
	if err != nil {
		t.Fatalf("ConfirmCall: %v", err)
	}
	if got.Status != domain.CallStatusConfirmed {
		t.Errorf("Status=%q; want confirmed", got.Status)
	}
	if got.ConfirmedTime == nil || !got.ConfirmedTime.Equal(twoSlots()[1]) {
		t.Errorf("ConfirmedTime=%v; want the second stored slot", got.ConfirmedTime)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "alice@example.com" {
		t.Errorf("sent=%v; want one confirmation to the requester", notifier.sent)
	}
}

func TestConfirmCall_SlotIndexOutOfRange(t *testing.T) {
	repo := newMockCallRepo()
	svc := newTestService(repo, &mockNotifier{})
	ctx := context.Background()

	call, err := svc.RequestCall(ctx, 1, "Offer negotiation", twoSlots())
	if err != nil {
		t.Fatalf("RequestCall: %v", err)
	}

	for _, idx := range []int{-1, 2, 5} {
		_, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: idx, ActorID: 7})
		if !domain.IsValidation(err) {
			t.Errorf("SlotIndex=%d: expected validation error, got %v", idx, err)
		}
	}

	// The request is untouched by the rejected confirmations.
	got, err := svc.GetCall(ctx, call.ID)
	if err != nil {
		t.Fatalf("GetCall: %v", err)
	}
	if got.Status != domain.CallStatusPending || got.ConfirmedTime != nil {
		t.Errorf("call mutated by rejected confirm: %+v", got)
	}
}

func TestConfirmCall_NotificationFailureDoesNotFailConfirm(t *testing.T) {
	repo := newMockCallRepo()
	notifier := &mockNotifier{sendErr: errors.New("smtp unreachable")}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	call, _ := svc.RequestCall(ctx, 1, "t", twoSlots())

	got, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: 0, ActorID: 7})
	if err != nil {
		t.Fatalf("ConfirmCall must not propagate the send failure: %v", err)
	}
	if got.Status != domain.CallStatusConfirmed {
		t.Errorf("Status=%q; the confirm must stand", got.Status)
	}
}

func TestConfirmCall_ConflictWhenAlreadyConfirmed(t *testing.T) {
	repo := newMockCallRepo()
	svc := newTestService(repo, &mockNotifier{})
	ctx := context.Background()

	call, _ := svc.RequestCall(ctx, 1, "t", twoSlots())
	if _, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: 0, ActorID: 7}); err != nil {
		t.Fatalf("first ConfirmCall: %v", err)
	}

	_, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: 0, ActorID: 7})
	if !domain.IsConflict(err) {
		t.Errorf("expected conflict on second confirm, got %v", err)
	}
}

func TestCancelCall_SendsNotification(t *testing.T) {
	repo := newMockCallRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	call, _ := svc.RequestCall(ctx, 1, "t", twoSlots())

	got, err := svc.CancelCall(ctx, call.ID, 7)
	if err != nil {
		t.Fatalf("CancelCall: %v", err)
	}
	if got.Status != domain.CallStatusCancelled {
		t.Errorf("Status=%q; want cancelled", got.Status)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("sent %d notifications; want 1", len(notifier.sent))
	}
}

func TestCompleteCall_RequiresConfirmed(t *testing.T) {
	repo := newMockCallRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	call, _ := svc.RequestCall(ctx, 1, "t", twoSlots())

	// Completing straight from pending conflicts.
	if _, err := svc.CompleteCall(ctx, call.ID, 7); !domain.IsConflict(err) {
		t.Errorf("expected conflict completing a pending call, got %v", err)
	}

	if _, err := svc.ConfirmCall(ctx, call.ID, domain.CallConfirmation{SlotIndex: 0, ActorID: 7}); err != nil {
		t.Fatalf("ConfirmCall: %v", err)
	}
	notifier.sent = nil

	got, err := svc.CompleteCall(ctx, call.ID, 7)
	if err != nil {
		t.Fatalf("CompleteCall: %v", err)
	}
	if got.Status != domain.CallStatusCompleted {
		t.Errorf("Status=%q; want completed", got.Status)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("completion must not notify; sent=%v", notifier.sent)
	}
}
