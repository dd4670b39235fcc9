package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

const eventColumns = `
	id, title, description, date, price, is_free, capacity, url,
	establishment_id, establishment_name, city, neighborhood, street, number,
	user_id, created_at, updated_at
`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row, ev *models.Event) error {
	return row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.Date,
		&ev.Price,
		&ev.IsFree,
		&ev.Capacity,
		&ev.URL,
		&ev.EstablishmentID,
		&ev.EstablishmentName,
		&ev.City,
		&ev.Neighborhood,
		&ev.Street,
		&ev.Number,
		&ev.UserID,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
}

// Create inserts the event and its genre/artist links in one transaction.
// When claimEstablishment is set the linked establishment is claimed for
// the event's user if it is currently unowned.
func (r *EventRepository) Create(ctx context.Context, ev *models.Event, claimEstablishment bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO events (
			title, description, date, price, is_free, capacity, url,
			establishment_id, establishment_name, city, neighborhood, street, number,
			user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := tx.QueryRow(ctx, query,
		ev.Title,
		ev.Description,
		ev.Date,
		ev.Price,
		ev.IsFree,
		ev.Capacity,
		ev.URL,
		ev.EstablishmentID,
		ev.EstablishmentName,
		ev.City,
		ev.Neighborhood,
		ev.Street,
		ev.Number,
		ev.UserID,
	)
	if err := row.Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return err
	}

	if claimEstablishment && ev.EstablishmentID != nil && ev.UserID != nil {
		if err := claimEstablishmentTx(ctx, tx, *ev.EstablishmentID, *ev.UserID); err != nil {
			return err
		}
	}

	if ev.GenreIDs != nil {
		if err := replaceLinks(ctx, tx, "event_genres", "genre_id", "genres", ev.ID, ev.GenreIDs); err != nil {
			return err
		}
	}
	if ev.ArtistIDs != nil {
		if err := replaceLinks(ctx, tx, "event_artists", "artist_id", "artists", ev.ID, ev.ArtistIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return r.loadLinksOne(ctx, ev)
}

// Update applies the patch, claims the event for claimUserID when it has
// no owner, and replaces link sets that are present in the patch, all in
// one transaction. claimEstablishmentID, when non-nil, additionally
// claims that establishment for claimUserID if it is unowned.
func (r *EventRepository) Update(ctx context.Context, id int64, patch models.EventPatch, claimUserID int64, claimEstablishmentID *int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Price != nil {
		set.add("price", *patch.Price)
	}
	if patch.IsFree != nil {
		set.add("is_free", *patch.IsFree)
	}
	if patch.Capacity != nil {
		set.add("capacity", *patch.Capacity)
	}
	if patch.URL != nil {
		set.add("url", *patch.URL)
	}
	if patch.EstablishmentID != nil {
		set.add("establishment_id", *patch.EstablishmentID)
	}
	if patch.EstablishmentName != nil {
		set.add("establishment_name", *patch.EstablishmentName)
	}
	if patch.City != nil {
		set.add("city", *patch.City)
	}
	if patch.Neighborhood != nil {
		set.add("neighborhood", *patch.Neighborhood)
	}
	if patch.Street != nil {
		set.add("street", *patch.Street)
	}
	if patch.Number != nil {
		set.add("number", *patch.Number)
	}
	set.cols = append(set.cols,
		fmt.Sprintf("user_id = COALESCE(user_id, %s)", set.next(claimUserID)),
		"updated_at = NOW()",
	)

	query := fmt.Sprintf("UPDATE events SET %s WHERE id = %s",
		strings.Join(set.cols, ", "), set.next(id))
	cmd, err := tx.Exec(ctx, query, set.args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	if claimEstablishmentID != nil {
		if err := claimEstablishmentTx(ctx, tx, *claimEstablishmentID, claimUserID); err != nil {
			return err
		}
	}

	if patch.GenreIDs != nil {
		if err := replaceLinks(ctx, tx, "event_genres", "genre_id", "genres", id, *patch.GenreIDs); err != nil {
			return err
		}
	}
	if patch.ArtistIDs != nil {
		if err := replaceLinks(ctx, tx, "event_artists", "artist_id", "artists", id, *patch.ArtistIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// claimEstablishmentTx sets the establishment owner only when none is
// recorded; the affected-row count tells claimed from already-owned apart
// without failing either way.
func claimEstablishmentTx(ctx context.Context, tx pgx.Tx, establishmentID, userID int64) error {
	const query = `UPDATE establishments SET owner_id = $1 WHERE id = $2 AND owner_id IS NULL`
	_, err := tx.Exec(ctx, query, userID, establishmentID)
	return err
}

// replaceLinks swaps the full link set for an event. Candidate IDs that
// do not exist in the referenced table are silently dropped.
func replaceLinks(ctx context.Context, tx pgx.Tx, linkTable, linkColumn, refTable string, eventID int64, ids []int64) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE event_id = $1", linkTable), eventID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (event_id, %s) SELECT $1, id FROM %s WHERE id = ANY($2)",
		linkTable, linkColumn, refTable,
	)
	_, err := tx.Exec(ctx, query, eventID, ids)
	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var ev models.Event
	if err := scanEvent(r.pool.QueryRow(ctx, query, id), &ev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}

	if err := r.loadLinksOne(ctx, &ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

func (r *EventRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.queryMany(ctx, query, userID, limit, offset)
}

func (r *EventRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLinks(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM events WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}

func (r *EventRepository) loadLinksOne(ctx context.Context, ev *models.Event) error {
	events := []models.Event{*ev}
	if err := r.loadLinks(ctx, events); err != nil {
		return err
	}
	ev.GenreIDs = events[0].GenreIDs
	ev.ArtistIDs = events[0].ArtistIDs
	return nil
}

func (r *EventRepository) loadLinks(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, len(events))
	index := make(map[int64]int, len(events))
	for i := range events {
		ids[i] = events[i].ID
		index[events[i].ID] = i
		events[i].GenreIDs = []int64{}
		events[i].ArtistIDs = []int64{}
	}

	genreRows, err := r.pool.Query(ctx,
		`SELECT event_id, genre_id FROM event_genres WHERE event_id = ANY($1) ORDER BY genre_id`, ids)
	if err != nil {
		return err
	}
	defer genreRows.Close()
	for genreRows.Next() {
		var eventID, genreID int64
		if err := genreRows.Scan(&eventID, &genreID); err != nil {
			return err
		}
		i := index[eventID]
		events[i].GenreIDs = append(events[i].GenreIDs, genreID)
	}
	if err := genreRows.Err(); err != nil {
		return err
	}

	artistRows, err := r.pool.Query(ctx,
		`SELECT event_id, artist_id FROM event_artists WHERE event_id = ANY($1) ORDER BY artist_id`, ids)
	if err != nil {
		return err
	}
	defer artistRows.Close()
	for artistRows.Next() {
		var eventID, artistID int64
		if err := artistRows.Scan(&eventID, &artistID); err != nil {
			return err
		}
		i := index[eventID]
		events[i].ArtistIDs = append(events[i].ArtistIDs, artistID)
	}
	return artistRows.Err()
}
