package repository

import (
	"context"
	"sync"

	"github.com/vibast-solutions/ms-go-webhooks/app/entity"
)

// EventRepository is a bounded in-memory journal of received webhook events.
// Oldest entries are evicted once capacity is reached; nothing is persisted.
type EventRepository struct {
	mu       sync.RWMutex
	items    []*entity.WebhookEvent
	byID     map[string]*entity.WebhookEvent
	capacity int
}

func NewEventRepository(capacity int) *EventRepository {
	return &EventRepository{
		items:    make([]*entity.WebhookEvent, 0),
		byID:     make(map[string]*entity.WebhookEvent),
		capacity: normalizeCapacity(capacity),
	}
}

func (r *EventRepository) Create(_ context.Context, event *entity.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copyItem := *event
	r.items = append(r.items, &copyItem)
	r.byID[copyItem.ID] = &copyItem

	for len(r.items) > r.capacity {
		evicted := r.items[0]
		r.items = r.items[1:]
		delete(r.byID, evicted.ID)
	}

	return nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*entity.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

// ListRecent returns up to limit events, newest first, optionally filtered by
// event type.
func (r *EventRepository) ListRecent(_ context.Context, limit int, eventType string) ([]*entity.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = len(r.items)
	}

	items := make([]*entity.WebhookEvent, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(items) < limit; i-- {
		item := r.items[i]
		if eventType != "" && item.EventType != eventType {
			continue
		}
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

func (r *EventRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
