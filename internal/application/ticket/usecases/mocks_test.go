package usecases

import (
	"context"
	"sync"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// mockTransactor runs fn directly on the caller's context.
type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockTicketRepository struct {
	CreateFunc         func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc         func(ctx context.Context, id uint) error
	GetByIDFunc        func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc           func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByContactFunc func(ctx context.Context, filter ticket.ContactTicketCountFilter) ([]shared.ContactCount, int64, error)

	updated []*ticket.Ticket
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated = append(m.updated, t)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByContact(ctx context.Context, filter ticket.ContactTicketCountFilter) ([]shared.ContactCount, int64, error) {
	if m.CountByContactFunc != nil {
		return m.CountByContactFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockAuditLogRepository struct {
	AppendFunc func(ctx context.Context, e *ticket.AuditEntry) error

	mu      sync.Mutex
	entries []*ticket.AuditEntry
}

func (m *mockAuditLogRepository) Append(ctx context.Context, e *ticket.AuditEntry) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditLogRepository) ListByTicket(_ context.Context, ticketID uint, _ query.PageFilter) ([]*ticket.AuditEntry, int64, error) {
	list, _ := m.ListAllByTicket(context.Background(), ticketID)
	return list, int64(len(list)), nil
}

func (m *mockAuditLogRepository) ListAllByTicket(_ context.Context, ticketID uint) ([]*ticket.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*ticket.AuditEntry
	for _, e := range m.entries {
		if e.TicketID == ticketID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockCommentRepository struct {
	comments []*ticket.Comment
}

func (m *mockCommentRepository) Create(_ context.Context, c *ticket.Comment) error {
	c.ID = uint(len(m.comments) + 1)
	m.comments = append(m.comments, c)
	return nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, _ query.PageFilter) ([]*ticket.Comment, int64, error) {
	list, _ := m.ListAllByTicket(ctx, ticketID)
	return list, int64(len(list)), nil
}

func (m *mockCommentRepository) ListAllByTicket(_ context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var out []*ticket.Comment
	for _, c := range m.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockAskRepository struct {
	asks              []*ticket.Ask
	CountOutcomesFunc func(ctx context.Context, contactID uint) ([]ticket.AskOutcomeCount, error)
}

func (m *mockAskRepository) Create(_ context.Context, a *ticket.Ask) error {
	a.ID = uint(len(m.asks) + 1)
	m.asks = append(m.asks, a)
	return nil
}

func (m *mockAskRepository) Update(_ context.Context, a *ticket.Ask) error {
	for i, existing := range m.asks {
		if existing.ID == a.ID {
			m.asks[i] = a
			return nil
		}
	}
	return errors.NewNotFoundError("ask not found")
}

func (m *mockAskRepository) GetByID(_ context.Context, id uint) (*ticket.Ask, error) {
	for _, a := range m.asks {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("ask not found")
}

func (m *mockAskRepository) FindLatest(_ context.Context, ticketID, contactID uint) (*ticket.Ask, error) {
	for i := len(m.asks) - 1; i >= 0; i-- {
		a := m.asks[i]
		if a.TicketID == ticketID && a.ContactID != nil && *a.ContactID == contactID {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("ask not found")
}

func (m *mockAskRepository) ListByTicket(_ context.Context, ticketID uint) ([]*ticket.Ask, error) {
	var out []*ticket.Ask
	for _, a := range m.asks {
		if a.TicketID == ticketID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAskRepository) CountOutcomes(ctx context.Context, contactID uint) ([]ticket.AskOutcomeCount, error) {
	if m.CountOutcomesFunc != nil {
		return m.CountOutcomesFunc(ctx, contactID)
	}
	return nil, nil
}

type mockContactRepository struct {
	contact.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*contact.Contact, error)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id uint) (*contact.Contact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("contact not found")
}

type mockEventRepository struct {
	event.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*event.Event, error)
}

func (m *mockEventRepository) GetByID(ctx context.Context, id uint) (*event.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("event not found")
}

type mockUserRepository struct {
	user.Repository
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

type notification struct {
	to       string
	name     string
	ticketID uint
	title    string
}

type mockNotifier struct {
	sent chan notification
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan notification, 4)}
}

func (m *mockNotifier) NotifyTicketAssigned(_ context.Context, to, assigneeName string, ticketID uint, title string) error {
	m.sent <- notification{to: to, name: assigneeName, ticketID: ticketID, title: title}
	return nil
}
