package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/listora/listings-api/internal/domain/entity"
	"github.com/listora/listings-api/internal/domain/repository"
)

// allowedColumns is the only source of SQL fragments in the partial-update
// builder. Client-supplied keys never reach the statement text.
var allowedColumns = []string{"title", "description"}

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listings (title, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, l.Title, l.Description, l.OwnerID)

	return row.Scan(&l.ID, &l.CreatedAt)
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	l := &entity.Listing{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, created_at, owner_id
		FROM listings
		WHERE id = $1
	`, id)

	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.CreatedAt, &l.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]entity.Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, created_at, owner_id
		FROM listings
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.Listing, 0, limit)
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.CreatedAt, &l.OwnerID); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

func (r *ListingRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM listings WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return owner, nil
}

// UpdateFields updates exactly the supplied columns in one statement.
// SET clauses are rendered by walking allowedColumns, so the statement text
// is a function of the fixed column set only; values travel as parameters.
func (r *ListingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]string) (*entity.Listing, error) {
	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, col := range allowedColumns {
		v, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("update listing %d: no updatable columns", id)
	}
	args = append(args, id)

	l := &entity.Listing{}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE listings
		SET %s
		WHERE id = $%d
		RETURNING id, title, description, created_at, owner_id
	`, strings.Join(set, ", "), len(args)), args...)

	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.CreatedAt, &l.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
