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

var ErrGenreNotFound = errors.New("genre not found")

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	const query = `INSERT INTO genres (name) VALUES ($1) RETURNING id`
	row := r.pool.QueryRow(ctx, query, genre.Name)
	return row.Scan(&genre.ID)
}

func (r *GenreRepository) GetByID(ctx context.Context, id int64) (models.Genre, error) {
	const query = `SELECT id, name FROM genres WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	var genre models.Genre
	if err := row.Scan(&genre.ID, &genre.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Genre{}, ErrGenreNotFound
		}
		return models.Genre{}, err
	}
	return genre, nil
}

func (r *GenreRepository) List(ctx context.Context, limit, offset int) ([]models.Genre, error) {
	const query = `SELECT id, name FROM genres ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) Update(ctx context.Context, id int64, patch models.GenrePatch) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if len(set.cols) == 0 {
		// Nothing to change; still report missing rows.
		_, err := r.GetByID(ctx, id)
		return err
	}

	query := fmt.Sprintf("UPDATE genres SET %s WHERE id = %s",
		strings.Join(set.cols, ", "), set.next(id))
	cmd, err := r.pool.Exec(ctx, query, set.args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrGenreNotFound
	}
	return nil
}

func (r *GenreRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM genres WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrGenreNotFound
	}
	return nil
}

func (r *GenreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count)
	return count, err
}
