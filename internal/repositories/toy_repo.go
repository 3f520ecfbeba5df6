package repositories

import (
	"context"
	"errors"

	"toytopia/internal/models"
)

// ErrInvalidID is returned when an identifier cannot be parsed into the
// format used by the backing store.
var ErrInvalidID = errors.New("invalid toy id")

// ToyRepository defines the interface for toy data access.
//
// GetByID returns (nil, nil) when no toy matches. Upsert and Delete report
// missing toys through the counts of their results rather than an error.
type ToyRepository interface {
	List(ctx context.Context, limit int64) ([]models.Toy, error)
	GetByID(ctx context.Context, id string) (*models.Toy, error)
	FindByCategory(ctx context.Context, category models.Category) ([]models.Toy, error)
	FindBySeller(ctx context.Context, email string) ([]models.Toy, error)
	Create(ctx context.Context, toy *models.Toy) (*models.InsertResult, error)
	Upsert(ctx context.Context, id string, input models.ToyInput) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	Ping(ctx context.Context) error
}
