package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"toytopia/internal/models"

	"github.com/google/uuid"
)

// MockToyRepository is an in-memory implementation of ToyRepository.
// Toys are returned in insertion order.
type MockToyRepository struct {
	toys  map[string]models.Toy
	order []string
	mu    sync.RWMutex
}

// NewMockToyRepository creates a new instance of MockToyRepository.
func NewMockToyRepository() *MockToyRepository {
	return &MockToyRepository{
		toys: make(map[string]models.Toy),
	}
}

func parseUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// List returns up to limit toys.
func (r *MockToyRepository) List(_ context.Context, limit int64) ([]models.Toy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toyList := make([]models.Toy, 0)
	for _, id := range r.order {
		if limit > 0 && int64(len(toyList)) >= limit {
			break
		}
		toyList = append(toyList, r.toys[id])
	}
	return toyList, nil
}

// GetByID returns a toy by its ID, or nil if there is none.
func (r *MockToyRepository) GetByID(_ context.Context, id string) (*models.Toy, error) {
	if err := parseUUID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	toy, ok := r.toys[id]
	if !ok {
		return nil, nil
	}
	return &toy, nil
}

// FindByCategory returns every toy in the category.
func (r *MockToyRepository) FindByCategory(_ context.Context, category models.Category) ([]models.Toy, error) {
	return r.filter(func(t models.Toy) bool { return t.SubCategory == string(category) }), nil
}

// FindBySeller returns the toys of a seller, or every toy when email is empty.
func (r *MockToyRepository) FindBySeller(_ context.Context, email string) ([]models.Toy, error) {
	return r.filter(func(t models.Toy) bool { return email == "" || t.SellerEmail == email }), nil
}

func (r *MockToyRepository) filter(match func(models.Toy) bool) []models.Toy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toyList := make([]models.Toy, 0)
	for _, id := range r.order {
		if t := r.toys[id]; match(t) {
			toyList = append(toyList, t)
		}
	}
	return toyList
}

// Create adds a new toy. An ID is generated when the toy has none.
func (r *MockToyRepository) Create(_ context.Context, toy *models.Toy) (*models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if toy.ID == "" {
		toy.ID = uuid.New().String()
	}
	if _, exists := r.toys[toy.ID]; exists {
		return nil, fmt.Errorf("toy with ID %s already exists", toy.ID)
	}
	now := time.Now().UTC()
	toy.CreatedAt = now
	toy.UpdatedAt = now
	r.toys[toy.ID] = *toy
	r.order = append(r.order, toy.ID)
	return &models.InsertResult{Acknowledged: true, InsertedID: toy.ID}, nil
}

// Upsert overwrites the settable fields of a toy, creating it when absent.
func (r *MockToyRepository) Upsert(_ context.Context, id string, input models.ToyInput) (*models.UpdateResult, error) {
	if err := parseUUID(id); err != nil {
		return nil, err
	}
	// Stored ids must not share memory with the caller's request buffer.
	id = strings.Clone(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	toy, ok := r.toys[id]
	if ok {
		input.Apply(&toy)
		toy.UpdatedAt = now
		r.toys[id] = toy
		return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}

	toy = input.Toy()
	toy.ID = id
	toy.CreatedAt = now
	toy.UpdatedAt = now
	r.toys[id] = toy
	r.order = append(r.order, id)
	upserted := id
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &upserted}, nil
}

// Delete removes a toy by its ID.
func (r *MockToyRepository) Delete(_ context.Context, id string) (*models.DeleteResult, error) {
	if err := parseUUID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.toys[id]; !ok {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.toys, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// Ping always succeeds.
func (r *MockToyRepository) Ping(context.Context) error {
	return nil
}
