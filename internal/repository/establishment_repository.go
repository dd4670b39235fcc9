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

var ErrEstablishmentNotFound = errors.New("establishment not found")

const establishmentColumns = `
	id, name, description, image_url, city, neighborhood, street, number,
	capacity, owner_id, created_at, updated_at
`

type EstablishmentRepository struct {
	pool *pgxpool.Pool
}

func NewEstablishmentRepository(pool *pgxpool.Pool) *EstablishmentRepository {
	return &EstablishmentRepository{pool: pool}
}

func scanEstablishment(row pgx.Row, est *models.Establishment) error {
	return row.Scan(
		&est.ID,
		&est.Name,
		&est.Description,
		&est.ImageURL,
		&est.City,
		&est.Neighborhood,
		&est.Street,
		&est.Number,
		&est.Capacity,
		&est.OwnerID,
		&est.CreatedAt,
		&est.UpdatedAt,
	)
}

func (r *EstablishmentRepository) Create(ctx context.Context, est *models.Establishment) error {
	const query = `
		INSERT INTO establishments (
			name, description, image_url, city, neighborhood, street, number,
			capacity, owner_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query,
		est.Name,
		est.Description,
		est.ImageURL,
		est.City,
		est.Neighborhood,
		est.Street,
		est.Number,
		est.Capacity,
		est.OwnerID,
	)
	return row.Scan(&est.ID, &est.CreatedAt, &est.UpdatedAt)
}

func (r *EstablishmentRepository) GetByID(ctx context.Context, id int64) (models.Establishment, error) {
	query := `SELECT ` + establishmentColumns + ` FROM establishments WHERE id = $1`

	var est models.Establishment
	if err := scanEstablishment(r.pool.QueryRow(ctx, query, id), &est); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Establishment{}, ErrEstablishmentNotFound
		}
		return models.Establishment{}, err
	}
	return est, nil
}

// GetByIDs returns the establishments matching ids, keyed by id. Missing
// ids are simply absent from the map.
func (r *EstablishmentRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Establishment, error) {
	result := make(map[int64]models.Establishment, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + establishmentColumns + ` FROM establishments WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var est models.Establishment
		if err := scanEstablishment(rows, &est); err != nil {
			return nil, err
		}
		result[est.ID] = est
	}
	return result, rows.Err()
}

func (r *EstablishmentRepository) List(ctx context.Context, limit, offset int) ([]models.Establishment, error) {
	query := `SELECT ` + establishmentColumns + ` FROM establishments ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

func (r *EstablishmentRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Establishment, error) {
	query := `SELECT ` + establishmentColumns + ` FROM establishments WHERE owner_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.queryMany(ctx, query, ownerID, limit, offset)
}

func (r *EstablishmentRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.Establishment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ests []models.Establishment
	for rows.Next() {
		var est models.Establishment
		if err := scanEstablishment(rows, &est); err != nil {
			return nil, err
		}
		ests = append(ests, est)
	}
	return ests, rows.Err()
}

// Update applies the patch and claims the establishment for claimUserID
// when it has no owner. COALESCE keeps an existing owner in place, so
// ownership is set at most once even under concurrent updates.
func (r *EstablishmentRepository) Update(ctx context.Context, id int64, patch models.EstablishmentPatch, claimUserID int64) error {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		set.add("image_url", *patch.ImageURL)
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
	if patch.Capacity != nil {
		set.add("capacity", *patch.Capacity)
	}
	set.cols = append(set.cols,
		fmt.Sprintf("owner_id = COALESCE(owner_id, %s)", set.next(claimUserID)),
		"updated_at = NOW()",
	)

	query := fmt.Sprintf("UPDATE establishments SET %s WHERE id = %s",
		strings.Join(set.cols, ", "), set.next(id))
	cmd, err := r.pool.Exec(ctx, query, set.args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEstablishmentNotFound
	}
	return nil
}

// Delete removes the establishment; its events go with it via the
// cascading foreign key.
func (r *EstablishmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM establishments WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEstablishmentNotFound
	}
	return nil
}

func (r *EstablishmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM establishments`).Scan(&count)
	return count, err
}
