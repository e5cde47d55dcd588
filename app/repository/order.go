package repository

import (
	"context"
	"sync"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
)

// OrderRepository tracks orders created through this service so received
// events can be correlated with them. In-memory and bounded, like the event
// journal.
type OrderRepository struct {
	mu       sync.RWMutex
	items    []*entity.Order
	byID     map[string]*entity.Order
	capacity int
}

func NewOrderRepository(capacity int) *OrderRepository {
	return &OrderRepository{
		items:    make([]*entity.Order, 0),
		byID:     make(map[string]*entity.Order),
		capacity: normalizeCapacity(capacity),
	}
}

func (r *OrderRepository) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[order.ID]; ok {
		return ErrOrderAlreadyExists
	}

	copyItem := *order
	r.items = append(r.items, &copyItem)
	r.byID[copyItem.ID] = &copyItem

	for len(r.items) > r.capacity {
		evicted := r.items[0]
		r.items = r.items[1:]
		delete(r.byID, evicted.ID)
	}

	return nil
}

func (r *OrderRepository) Update(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[order.ID]
	if !ok {
		return ErrOrderNotFound
	}
	*existing = *order
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *OrderRepository) FindByRequestID(_ context.Context, requestID string) (*entity.Order, error) {
	if requestID == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RequestID == requestID {
			copyItem := *r.items[i]
			return &copyItem, nil
		}
	}
	return nil, nil
}

func (r *OrderRepository) ListRecent(_ context.Context, limit int) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}

	items := make([]*entity.Order, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(items) < limit; i-- {
		copyItem := *r.items[i]
		items = append(items, &copyItem)
	}
	return items, nil
}
