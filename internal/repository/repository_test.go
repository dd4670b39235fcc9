package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitortoniolo/webapp-showme/internal/database"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/security"
)

// testPool connects to the database named by TEST_DATABASE_URL, applies
// migrations and empties all tables. Tests using it are skipped when the
// variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.Migrate(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		TRUNCATE event_artists, event_genres, events, establishments,
			genres, artists, session_tokens, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func testUser(t *testing.T, users *UserRepository, email string) models.User {
	t.Helper()
	hash, err := security.HashPassword("pw")
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: hash}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

func strp(s string) *string { return &s }

func TestEstablishmentDeleteCascadesEvents(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ests := NewEstablishmentRepository(pool)
	events := NewEventRepository(pool)

	est := models.Establishment{Name: "Casa das Rosas"}
	require.NoError(t, ests.Create(ctx, &est))

	ev := models.Event{Title: "Noite de Jazz", EstablishmentID: &est.ID}
	require.NoError(t, events.Create(ctx, &ev, false))

	require.NoError(t, ests.Delete(ctx, est.ID))

	_, err := events.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUserDeleteOrphansResources(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	sessions := NewSessionRepository(pool)
	ests := NewEstablishmentRepository(pool)
	events := NewEventRepository(pool)

	user := testUser(t, users, "owner@example.com")

	est := models.Establishment{Name: "Casa das Rosas", OwnerID: &user.ID}
	require.NoError(t, ests.Create(ctx, &est))
	ev := models.Event{Title: "Noite de Jazz", UserID: &user.ID}
	require.NoError(t, events.Create(ctx, &ev, false))
	session := models.SessionToken{Token: "tok-orphan-test", UserID: user.ID}
	require.NoError(t, sessions.Create(ctx, &session))

	_, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	require.NoError(t, err)

	// resources survive ownerless, sessions do not
	gotEst, err := ests.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Nil(t, gotEst.OwnerID)

	gotEv, err := events.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Nil(t, gotEv.UserID)

	_, err = sessions.FindByToken(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEstablishmentUpdateClaimsOnce(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	ests := NewEstablishmentRepository(pool)

	first := testUser(t, users, "first@example.com")
	second := testUser(t, users, "second@example.com")

	est := models.Establishment{Name: "Armazém do Porto"}
	require.NoError(t, ests.Create(ctx, &est))

	require.NoError(t, ests.Update(ctx, est.ID, models.EstablishmentPatch{City: strp("Santos")}, first.ID))
	got, err := ests.GetByID(ctx, est.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, first.ID, *got.OwnerID)

	// COALESCE keeps the first claimer even when someone else writes
	require.NoError(t, ests.Update(ctx, est.ID, models.EstablishmentPatch{City: strp("Guarujá")}, second.ID))
	got, err = ests.GetByID(ctx, est.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, first.ID, *got.OwnerID)
	require.NotNil(t, got.City)
	assert.Equal(t, "Guarujá", *got.City)
}

func TestEventCreateClaimsUnownedEstablishment(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	ests := NewEstablishmentRepository(pool)
	events := NewEventRepository(pool)

	creator := testUser(t, users, "creator@example.com")
	owner := testUser(t, users, "owner@example.com")

	t.Run("unowned venue is claimed", func(t *testing.T) {
		est := models.Establishment{Name: "Armazém do Porto"}
		require.NoError(t, ests.Create(ctx, &est))

		ev := models.Event{Title: "Roda de samba", EstablishmentID: &est.ID, UserID: &creator.ID}
		require.NoError(t, events.Create(ctx, &ev, true))

		got, err := ests.GetByID(ctx, est.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, creator.ID, *got.OwnerID)
	})

	t.Run("owned venue keeps its owner", func(t *testing.T) {
		est := models.Establishment{Name: "Clube do Owner", OwnerID: &owner.ID}
		require.NoError(t, ests.Create(ctx, &est))

		ev := models.Event{Title: "Show fechado", EstablishmentID: &est.ID, UserID: &creator.ID}
		require.NoError(t, events.Create(ctx, &ev, true))

		got, err := ests.GetByID(ctx, est.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, owner.ID, *got.OwnerID)
	})
}

func TestEventLinkReplacement(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	genres := NewGenreRepository(pool)
	events := NewEventRepository(pool)

	// updates claim the event for this user as a side effect
	claimer := testUser(t, users, "claimer@example.com")

	samba := models.Genre{Name: "Samba"}
	require.NoError(t, genres.Create(ctx, &samba))
	jazz := models.Genre{Name: "Jazz"}
	require.NoError(t, genres.Create(ctx, &jazz))

	t.Run("unknown ids are dropped on create", func(t *testing.T) {
		ev := models.Event{Title: "Noite mista", GenreIDs: []int64{samba.ID, 9999}}
		require.NoError(t, events.Create(ctx, &ev, false))
		assert.Equal(t, []int64{samba.ID}, ev.GenreIDs)
	})

	ev := models.Event{Title: "Noite de escolha", GenreIDs: []int64{samba.ID}}
	require.NoError(t, events.Create(ctx, &ev, false))

	t.Run("present set replaces in full", func(t *testing.T) {
		ids := []int64{jazz.ID, 9999}
		require.NoError(t, events.Update(ctx, ev.ID, models.EventPatch{GenreIDs: &ids}, claimer.ID, nil))
		got, err := events.GetByID(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{jazz.ID}, got.GenreIDs)
	})

	t.Run("absent set is untouched", func(t *testing.T) {
		require.NoError(t, events.Update(ctx, ev.ID, models.EventPatch{Title: strp("Noite trocada")}, claimer.ID, nil))
		got, err := events.GetByID(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{jazz.ID}, got.GenreIDs)
	})

	t.Run("empty set clears", func(t *testing.T) {
		empty := []int64{}
		require.NoError(t, events.Update(ctx, ev.ID, models.EventPatch{GenreIDs: &empty}, claimer.ID, nil))
		got, err := events.GetByID(ctx, ev.ID)
		require.NoError(t, err)
		assert.Empty(t, got.GenreIDs)
		assert.NotNil(t, got.GenreIDs)
	})
}
