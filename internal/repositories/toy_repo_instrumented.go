package repositories

import (
	"context"
	"time"

	"toytopia/internal/metrics"
	"toytopia/internal/models"
)

// InstrumentedToyRepository records Prometheus metrics around another
// ToyRepository.
type InstrumentedToyRepository struct {
	next    ToyRepository
	metrics *metrics.Metrics
}

// NewInstrumentedToyRepository wraps next.
func NewInstrumentedToyRepository(next ToyRepository, m *metrics.Metrics) *InstrumentedToyRepository {
	return &InstrumentedToyRepository{next: next, metrics: m}
}

func (r *InstrumentedToyRepository) observe(op string, start time.Time, err error) {
	r.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	r.metrics.StoreOperations.WithLabelValues(op, metrics.Status(err)).Inc()
}

func (r *InstrumentedToyRepository) List(ctx context.Context, limit int64) (toys []models.Toy, err error) {
	defer func(start time.Time) { r.observe("list", start, err) }(time.Now())
	return r.next.List(ctx, limit)
}

func (r *InstrumentedToyRepository) GetByID(ctx context.Context, id string) (toy *models.Toy, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.next.GetByID(ctx, id)
}

func (r *InstrumentedToyRepository) FindByCategory(ctx context.Context, category models.Category) (toys []models.Toy, err error) {
	defer func(start time.Time) { r.observe("find_by_category", start, err) }(time.Now())
	return r.next.FindByCategory(ctx, category)
}

func (r *InstrumentedToyRepository) FindBySeller(ctx context.Context, email string) (toys []models.Toy, err error) {
	defer func(start time.Time) { r.observe("find_by_seller", start, err) }(time.Now())
	return r.next.FindBySeller(ctx, email)
}

func (r *InstrumentedToyRepository) Create(ctx context.Context, toy *models.Toy) (res *models.InsertResult, err error) {
	defer func(start time.Time) { r.observe("create", start, err) }(time.Now())
	return r.next.Create(ctx, toy)
}

func (r *InstrumentedToyRepository) Upsert(ctx context.Context, id string, input models.ToyInput) (res *models.UpdateResult, err error) {
	defer func(start time.Time) { r.observe("upsert", start, err) }(time.Now())
	return r.next.Upsert(ctx, id, input)
}

func (r *InstrumentedToyRepository) Delete(ctx context.Context, id string) (res *models.DeleteResult, err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	return r.next.Delete(ctx, id)
}

func (r *InstrumentedToyRepository) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { r.observe("ping", start, err) }(time.Now())
	return r.next.Ping(ctx)
}
