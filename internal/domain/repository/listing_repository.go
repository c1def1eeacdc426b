package repository

import (
	"context"

	"github.com/listora/listings-api/internal/domain/entity"
)

// ListingRepository defines listing-related database operations. All
// methods take parameterized statements only; the partial update receives a
// closed column->value map produced by the input validator.
type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
	List(ctx context.Context, limit, offset int) ([]entity.Listing, error)
	// OwnerOf returns the recorded owner id, or ErrNotFound.
	OwnerOf(ctx context.Context, id int64) (int64, error)
	// UpdateFields applies exactly the supplied columns and returns the full
	// updated row, or ErrNotFound if the row vanished.
	UpdateFields(ctx context.Context, id int64, fields map[string]string) (*entity.Listing, error)
	// Delete removes by id and reports ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id int64) error
}
