package services

import (
	"context"
	"time"

	"toytopia/internal/metrics"
	"toytopia/internal/models"
	"toytopia/internal/repositories"

	"github.com/rs/zerolog"
)

// DefaultListLimit caps the unfiltered toy listing.
const DefaultListLimit = 20

// EventPublisher publishes toy change events.
type EventPublisher interface {
	PublishToyEvent(event models.ToyEvent) error
}

// Options tunes a ToyService. Zero values select the defaults.
type Options struct {
	ListLimit int64
	Timeout   time.Duration
	Metrics   *metrics.Metrics
}

// ToyService handles the catalog operations.
type ToyService struct {
	repo      repositories.ToyRepository
	publisher EventPublisher
	log       zerolog.Logger
	listLimit int64
	timeout   time.Duration
	metrics   *metrics.Metrics
}

// NewToyService creates a new ToyService. publisher may be nil, in which case
// no events are published.
func NewToyService(repo repositories.ToyRepository, publisher EventPublisher, log zerolog.Logger, opts Options) *ToyService {
	if opts.ListLimit <= 0 {
		opts.ListLimit = DefaultListLimit
	}
	return &ToyService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		listLimit: opts.ListLimit,
		timeout:   opts.Timeout,
		metrics:   opts.Metrics,
	}
}

func (s *ToyService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// ListToys returns up to the configured limit of toys.
func (s *ToyService) ListToys(ctx context.Context) ([]models.Toy, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, s.listLimit)
}

// GetToy returns the projected view of a toy, or nil when it does not exist.
func (s *ToyService) GetToy(ctx context.Context, id string) (*models.ToyView, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	toy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toy.View(), nil
}

// ListByCategory returns the toys of a supported category. Any other value
// yields an empty list without touching the store.
func (s *ToyService) ListByCategory(ctx context.Context, text string) ([]models.Toy, error) {
	category, ok := models.ParseCategory(text)
	if !ok {
		s.log.Debug().Str("category", text).Msg("Unsupported category requested")
		return []models.Toy{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.FindByCategory(ctx, category)
}

// ListBySeller returns the toys whose sellerEmail equals email, or every toy
// when email is empty.
func (s *ToyService) ListBySeller(ctx context.Context, email string) ([]models.Toy, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.FindBySeller(ctx, email)
}

// CreateToy stores a new toy built from input.
func (s *ToyService) CreateToy(ctx context.Context, input models.ToyInput) (*models.InsertResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	toy := input.Toy()
	res, err := s.repo.Create(ctx, &toy)
	if err != nil {
		return nil, err
	}

	s.publish(models.ToyEvent{Type: models.ToyCreated, ToyID: res.InsertedID, SellerEmail: toy.SellerEmail})
	return res, nil
}

// UpdateToy sets the settable fields of the toy, creating it when absent.
// Ownership is not checked: any caller may update any toy.
func (s *ToyService) UpdateToy(ctx context.Context, id string, input models.ToyInput) (*models.UpdateResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.repo.Upsert(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if res.MatchedCount > 0 || res.UpsertedCount > 0 {
		s.publish(models.ToyEvent{Type: models.ToyUpdated, ToyID: id, SellerEmail: input.SellerEmail})
	}
	return res, nil
}

// DeleteToy removes a toy. Deleting a missing toy is not an error.
func (s *ToyService) DeleteToy(ctx context.Context, id string) (*models.DeleteResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.DeletedCount > 0 {
		s.publish(models.ToyEvent{Type: models.ToyDeleted, ToyID: id})
	}
	return res, nil
}

// Ping reports whether the store is reachable.
func (s *ToyService) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Ping(ctx)
}

// publish sends event without failing the caller.
func (s *ToyService) publish(event models.ToyEvent) {
	if s.publisher == nil {
		return
	}

	event.OccurredAt = time.Now().UTC()
	err := s.publisher.PublishToyEvent(event)
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(event.Type, metrics.Status(err)).Inc()
	}
	if err != nil {
		s.log.Warn().Err(err).Str("type", event.Type).Str("toy_id", event.ToyID).Msg("Failed to publish toy event")
	}
}
