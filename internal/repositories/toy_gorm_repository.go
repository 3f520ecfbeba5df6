package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"toytopia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// viewColumns are the columns read by GetByID.
var viewColumns = []string{
	"id", "picture", "toy_name", "seller_name", "seller_email",
	"price", "rating", "quantity", "description", "sub_category",
}

// GORMToyRepository is a GORM implementation of ToyRepository for the
// postgres and sqlite drivers.
type GORMToyRepository struct {
	db    *gorm.DB
	table string
}

// NewGORMToyRepository creates a repository over the given table. Dashes in
// the collection name are replaced so "all-toys" maps to "all_toys".
func NewGORMToyRepository(db *gorm.DB, table string) *GORMToyRepository {
	return &GORMToyRepository{
		db:    db,
		table: strings.ReplaceAll(table, "-", "_"),
	}
}

// Migrate creates or updates the toys table.
func (r *GORMToyRepository) Migrate() error {
	if err := r.db.Table(r.table).AutoMigrate(&models.Toy{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", r.table, err)
	}
	return nil
}

func (r *GORMToyRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// List retrieves up to limit toys ordered by creation time.
func (r *GORMToyRepository) List(ctx context.Context, limit int64) ([]models.Toy, error) {
	toys := make([]models.Toy, 0)
	if err := r.scoped(ctx).Order("created_at").Limit(int(limit)).Find(&toys).Error; err != nil {
		return nil, fmt.Errorf("failed to list toys: %w", err)
	}
	return toys, nil
}

// GetByID retrieves the projected columns of a single toy.
func (r *GORMToyRepository) GetByID(ctx context.Context, id string) (*models.Toy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var toy models.Toy
	err := r.scoped(ctx).Select(viewColumns).Where("id = ?", id).Take(&toy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get toy by ID %s: %w", id, err)
	}
	return &toy, nil
}

// FindByCategory retrieves every toy in the category.
func (r *GORMToyRepository) FindByCategory(ctx context.Context, category models.Category) ([]models.Toy, error) {
	toys := make([]models.Toy, 0)
	err := r.scoped(ctx).Where("sub_category = ?", string(category)).Order("created_at").Find(&toys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find toys in category %s: %w", category, err)
	}
	return toys, nil
}

// FindBySeller retrieves the toys of a seller, or every toy when email is empty.
func (r *GORMToyRepository) FindBySeller(ctx context.Context, email string) ([]models.Toy, error) {
	query := r.scoped(ctx).Order("created_at")
	if email != "" {
		query = query.Where("seller_email = ?", email)
	}

	toys := make([]models.Toy, 0)
	if err := query.Find(&toys).Error; err != nil {
		return nil, fmt.Errorf("failed to find toys for seller %s: %w", email, err)
	}
	return toys, nil
}

// Create inserts a new toy with a generated ID.
func (r *GORMToyRepository) Create(ctx context.Context, toy *models.Toy) (*models.InsertResult, error) {
	toy.ID = uuid.New().String()
	if err := r.scoped(ctx).Create(toy).Error; err != nil {
		return nil, fmt.Errorf("failed to create toy: %w", err)
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: toy.ID}, nil
}

// upsertColumns are overwritten when an insert collides with an existing id.
var upsertColumns = []string{
	"toy_name", "picture", "seller_name", "seller_email", "price",
	"sub_category", "rating", "quantity", "description", "updated_at",
}

// Upsert overwrites the settable columns of a toy, inserting it when absent.
func (r *GORMToyRepository) Upsert(ctx context.Context, id string, input models.ToyInput) (*models.UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result := &models.UpdateResult{Acknowledged: true}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Table(r.table).Where("id = ?", id).Count(&matched).Error; err != nil {
			return err
		}

		if matched > 0 {
			res := tx.Table(r.table).Where("id = ?", id).Updates(map[string]interface{}{
				"toy_name":     input.ToyName,
				"picture":      input.Picture,
				"seller_name":  input.SellerName,
				"seller_email": input.SellerEmail,
				"price":        input.Price,
				"sub_category": input.SubCategory,
				"rating":       input.Rating,
				"quantity":     input.Quantity,
				"description":  input.Description,
				"updated_at":   time.Now().UTC(),
			})
			if res.Error != nil {
				return res.Error
			}
			result.MatchedCount = matched
			result.ModifiedCount = res.RowsAffected
			return nil
		}

		// A concurrent upsert may insert the same id after the count; the
		// later write wins.
		toy := input.Toy()
		toy.ID = id
		if err := tx.Table(r.table).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&toy).Error; err != nil {
			return err
		}
		result.UpsertedCount = 1
		result.UpsertedID = &toy.ID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update toy %s: %w", id, err)
	}
	return result, nil
}

// Delete deletes a toy by its ID.
func (r *GORMToyRepository) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	res := r.scoped(ctx).Where("id = ?", id).Delete(&models.Toy{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete toy %s: %w", id, res.Error)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

// Ping checks the underlying database connection.
func (r *GORMToyRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
