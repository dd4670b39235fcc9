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

var ErrArtistNotFound = errors.New("artist not found")

type ArtistRepository struct {
	pool *pgxpool.Pool
}

func NewArtistRepository(pool *pgxpool.Pool) *ArtistRepository {
	return &ArtistRepository{pool: pool}
}

func (r *ArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	const query = `
		INSERT INTO artists (name, description, url, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query, artist.Name, artist.Description, artist.URL, artist.ImageURL)
	return row.Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
}

func (r *ArtistRepository) GetByID(ctx context.Context, id int64) (models.Artist, error) {
	const query = `
		SELECT id, name, description, url, image_url, created_at, updated_at
		FROM artists WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var artist models.Artist
	if err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.Description,
		&artist.URL,
		&artist.ImageURL,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, err
	}
	return artist, nil
}

func (r *ArtistRepository) List(ctx context.Context, limit, offset int) ([]models.Artist, error) {
	const query = `
		SELECT id, name, description, url, image_url, created_at, updated_at
		FROM artists ORDER BY id LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(
			&artist.ID,
			&artist.Name,
			&artist.Description,
			&artist.URL,
			&artist.ImageURL,
			&artist.CreatedAt,
			&artist.UpdatedAt,
		); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

func (r *ArtistRepository) Update(ctx context.Context, id int64, patch models.ArtistPatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.URL != nil {
		set.add("url", *patch.URL)
	}
	if patch.ImageURL != nil {
		set.add("image_url", *patch.ImageURL)
	}
	set.cols = append(set.cols, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE artists SET %s WHERE id = %s",
		strings.Join(set.cols, ", "), set.next(id))
	cmd, err := r.pool.Exec(ctx, query, set.args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrArtistNotFound
	}
	return nil
}

func (r *ArtistRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM artists WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrArtistNotFound
	}
	return nil
}

func (r *ArtistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM artists`).Scan(&count)
	return count, err
}
