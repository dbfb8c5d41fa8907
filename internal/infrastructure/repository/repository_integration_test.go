package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	apperrors "github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := database.Open(&config.DatabaseConfig{Driver: constants.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func strPtr(s string) *string { return &s }

func createContact(t *testing.T, repo *ContactRepository, name, discordID string) *contact.Contact {
	t.Helper()
	c, err := contact.NewContact(contact.Fields{FullName: name, DiscordID: discordID})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func createTicket(t *testing.T, repo *TicketRepository, contactID uint, status vo.TicketStatus, typ vo.TicketType) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.TicketParams{Title: "reach out", Type: typ, Priority: vo.DefaultPriority, ContactID: &contactID})
	require.NoError(t, err)
	if status != vo.StatusOpen {
		_, err = tk.Apply(ticket.Patch{Status: &status})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func TestTagAssignmentRepository_AssignIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tags := NewTagRepository(gdb)
	assignments := NewTagAssignmentRepository(gdb)

	c := createContact(t, contacts, "Ada", "1")
	tag, created, err := tags.GetOrCreate(ctx, "Organizer")
	require.NoError(t, err)
	require.True(t, created)

	first, created, err := assignments.Assign(ctx, c.ID(), tag.ID())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Organizer", first.TagName)

	second, created, err := assignments.Assign(ctx, c.ID(), tag.ID())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	contactID := c.ID()
	list, total, err := assignments.List(ctx, contact.TagAssignmentFilter{ContactID: &contactID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestTagRepository_GetOrCreateIsCaseInsensitive(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	tags := NewTagRepository(gdb)

	original, created, err := tags.GetOrCreate(ctx, "Dev-Software")
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := tags.GetOrCreate(ctx, "dev-software")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, original.ID(), again.ID())
	assert.Equal(t, "Dev-Software", again.Name())
	assert.Equal(t, constants.DefaultTagColor, again.Color())
}

func TestTagRepository_RejectsCaseFoldedDuplicates(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	tags := NewTagRepository(gdb)

	upper, err := contact.NewTag("C", "")
	require.NoError(t, err)
	require.NoError(t, tags.Create(ctx, upper))

	lower, err := contact.NewTag("c", "")
	require.NoError(t, err)
	err = tags.Create(ctx, lower)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))

	other, err := contact.NewTag("Go", "")
	require.NoError(t, err)
	require.NoError(t, tags.Create(ctx, other))
	require.NoError(t, other.Update(strPtr("c"), nil))
	err = tags.Update(ctx, other)
	assert.True(t, apperrors.IsConflictError(err))

	require.NoError(t, upper.Update(strPtr("c"), nil))
	assert.NoError(t, tags.Update(ctx, upper), "renaming a tag to a different case of itself is allowed")

	list, total, err := tags.List(ctx, contact.TagFilter{Query: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestContactRepository_SearchExample(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tags := NewTagRepository(gdb)
	assignments := NewTagAssignmentRepository(gdb)

	jane := createContact(t, contacts, "Jane Doe", "123456789012345678")
	createContact(t, contacts, "John Smith", "876543210987654321")
	tag, _, err := tags.GetOrCreate(ctx, "Dev-Software")
	require.NoError(t, err)
	_, _, err = assignments.Assign(ctx, jane.ID(), tag.ID())
	require.NoError(t, err)

	t.Run("matching query returns exactly the contact", func(t *testing.T) {
		list, total, err := contacts.List(ctx, contact.ContactFilter{Query: "Jane"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, jane.ID(), list[0].ID())
	})

	t.Run("unknown query returns an empty result", func(t *testing.T) {
		list, total, err := contacts.List(ctx, contact.ContactFilter{Query: "Nonexistent"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, list)
	})

	t.Run("tag name filter ignores case", func(t *testing.T) {
		name := "dev-software"
		list, total, err := contacts.List(ctx, contact.ContactFilter{TagName: &name})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, jane.ID(), list[0].ID())
	})

	t.Run("like wildcards are matched literally", func(t *testing.T) {
		_, total, err := contacts.List(ctx, contact.ContactFilter{Query: "%"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestTagAssignmentRepository_ReplaceLeavesOnlyNewSet(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tags := NewTagRepository(gdb)
	assignments := NewTagAssignmentRepository(gdb)

	c := createContact(t, contacts, "Ada", "1")
	a, _, err := tags.GetOrCreate(ctx, "a")
	require.NoError(t, err)
	b, _, err := tags.GetOrCreate(ctx, "b")
	require.NoError(t, err)
	z, _, err := tags.GetOrCreate(ctx, "z")
	require.NoError(t, err)

	require.NoError(t, assignments.Replace(ctx, c.ID(), []uint{a.ID(), b.ID()}))
	require.NoError(t, assignments.Replace(ctx, c.ID(), []uint{z.ID(), z.ID()}))

	byContact, err := tags.ListByContacts(ctx, []uint{c.ID()})
	require.NoError(t, err)
	require.Len(t, byContact[c.ID()], 1)
	assert.Equal(t, "z", byContact[c.ID()][0].Name())
}

func TestTicketRepository_CountByContact(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tickets := NewTicketRepository(gdb)

	a := createContact(t, contacts, "A", "1")
	b := createContact(t, contacts, "B", "2")
	c := createContact(t, contacts, "C", "3")
	for i := 0; i < 3; i++ {
		createTicket(t, tickets, a.ID(), vo.StatusCompleted, vo.TypeRecruit)
	}
	createTicket(t, tickets, b.ID(), vo.StatusCompleted, vo.TypeConfirm)
	createTicket(t, tickets, b.ID(), vo.StatusOpen, vo.TypeConfirm)
	createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)

	t.Run("default bounds keep zero counts", func(t *testing.T) {
		rows, total, err := tickets.CountByContact(ctx, ticket.ContactTicketCountFilter{Status: vo.StatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []shared.ContactCount{
			{ContactID: a.ID(), FullName: "A", Count: 3},
			{ContactID: b.ID(), FullName: "B", Count: 1},
			{ContactID: c.ID(), FullName: "C", Count: 0},
		}, rows)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		max := int64(1)
		rows, total, err := tickets.CountByContact(ctx, ticket.ContactTicketCountFilter{
			GroupByContactFilter: shared.GroupByContactFilter{Bounds: shared.CountBounds{Min: 1, Max: &max}},
			Status:               vo.StatusCompleted,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, b.ID(), rows[0].ContactID)
	})

	t.Run("type narrows the scope", func(t *testing.T) {
		typ := vo.TypeRecruit
		rows, _, err := tickets.CountByContact(ctx, ticket.ContactTicketCountFilter{Status: vo.StatusCompleted, Type: &typ})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, a.ID(), rows[0].ContactID)
		assert.Equal(t, c.ID(), rows[1].ContactID)
	})

	t.Run("pagination applies after ordering", func(t *testing.T) {
		rows, total, err := tickets.CountByContact(ctx, ticket.ContactTicketCountFilter{
			GroupByContactFilter: shared.GroupByContactFilter{PageFilter: query.PageFilter{Page: 2, PageSize: 2}},
			Status:               vo.StatusCompleted,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, rows, 1)
		assert.Equal(t, c.ID(), rows[0].ContactID)
	})
}

func TestParticipationRepository_CountByContactBounds(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	events := NewEventRepository(gdb)
	participations := NewParticipationRepository(gdb)

	var eventIDs []uint
	for i := 0; i < 6; i++ {
		e, err := event.NewEvent(event.Fields{Name: "canvass"})
		require.NoError(t, err)
		require.NoError(t, events.Create(ctx, e))
		eventIDs = append(eventIDs, e.ID())
	}

	attend := func(c *contact.Contact, n int) {
		for i := 0; i < n; i++ {
			p, err := event.NewParticipation(eventIDs[i], c.ID(), event.CommitmentAttended, "")
			require.NoError(t, err)
			require.NoError(t, participations.Create(ctx, p))
		}
	}
	six := createContact(t, contacts, "Six", "1")
	two := createContact(t, contacts, "Two", "2")
	five := createContact(t, contacts, "Five", "3")
	one := createContact(t, contacts, "One", "4")
	alsoTwo := createContact(t, contacts, "Also Two", "5")
	attend(six, 6)
	attend(two, 2)
	attend(five, 5)
	attend(one, 1)
	attend(alsoTwo, 2)

	max := int64(5)
	rows, total, err := participations.CountByContact(ctx, event.ContactParticipationCountFilter{
		GroupByContactFilter: shared.GroupByContactFilter{Bounds: shared.CountBounds{Min: 2, Max: &max}},
		Status:               event.CommitmentAttended,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Equal(t, five.ID(), rows[0].ContactID)
	assert.Equal(t, int64(5), rows[0].Count)
	assert.Equal(t, two.ID(), rows[1].ContactID)
	assert.Equal(t, alsoTwo.ID(), rows[2].ContactID)
}

func TestAskRepository_FindLatest(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tickets := NewTicketRepository(gdb)
	asks := NewAskRepository(gdb)

	c := createContact(t, contacts, "Ada", "1")
	tk := createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)

	t.Run("missing pair is not found and nothing is created", func(t *testing.T) {
		_, err := asks.FindLatest(ctx, tk.ID(), c.ID()+100)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))

		list, err := asks.ListByTicket(ctx, tk.ID())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("returns the newest ask", func(t *testing.T) {
		contactID := c.ID()
		first, err := ticket.NewAsk(tk.ID(), &contactID, vo.AskUnknown, "first")
		require.NoError(t, err)
		require.NoError(t, asks.Create(ctx, first))
		second, err := ticket.NewAsk(tk.ID(), &contactID, vo.AskUnknown, "second")
		require.NoError(t, err)
		require.NoError(t, asks.Create(ctx, second))

		latest, err := asks.FindLatest(ctx, tk.ID(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
	})
}

func TestTicketRepository_ListQueryMatchesID(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tickets := NewTicketRepository(gdb)

	c := createContact(t, contacts, "Ada", "1")
	first := createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)
	createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)

	list, total, err := tickets.List(ctx, ticket.TicketFilter{Query: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID(), list[0].ID())
}

func TestContactRepository_DeleteDetachesTickets(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	contacts := NewContactRepository(gdb)
	tickets := NewTicketRepository(gdb)

	c := createContact(t, contacts, "Ada", "1")
	tk := createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)

	require.NoError(t, contacts.Delete(ctx, c.ID()))

	reloaded, err := tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, reloaded.ContactID())

	err = contacts.Delete(ctx, c.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCommentRepository_CreateFillsAuthorUsername(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(gdb, logger.NewNopLogger())
	contacts := NewContactRepository(gdb)
	tickets := NewTicketRepository(gdb)
	comments := NewCommentRepository(gdb)

	alice, err := user.NewUser(user.Params{Username: "alice", Email: "alice@example.org"})
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, alice))

	c := createContact(t, contacts, "Ada", "1")
	tk := createTicket(t, tickets, c.ID(), vo.StatusOpen, vo.TypeRecruit)

	authorID := alice.ID()
	authored, err := ticket.NewComment(tk.ID(), &authorID, "called, left a voicemail")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, authored))
	assert.Equal(t, "alice", authored.AuthorUsername)

	system, err := ticket.NewComment(tk.ID(), nil, "imported")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, system))
	assert.Empty(t, system.AuthorUsername)

	listed, err := comments.ListAllByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, cm := range listed {
		if cm.ID == authored.ID {
			assert.Equal(t, authored.AuthorUsername, cm.AuthorUsername)
		}
	}
}
