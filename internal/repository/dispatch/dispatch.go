package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"marketplace/internal/entities"
	"marketplace/internal/service/dispatch"
)

const keyPrefix = "dispatch"

var _ dispatch.StatusStore = (*Repository)(nil)

// Repository хранит статусы побочных эффектов в Redis: один hash на пару
// (offer, version), поле hash это id записи. Ключ живёт ttl с последней записи.
type Repository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func New(client redis.Cmdable, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

func (r *Repository) Save(ctx context.Context, offerID string, version int64, record entities.DispatchRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("unexpected dispatch repository save error: %w", err)
	}

	key := statusKey(offerID, version)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, record.ID, data)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unexpected dispatch repository save error: %w", err)
	}

	return nil
}

func (r *Repository) List(ctx context.Context, offerID string, version int64) ([]entities.DispatchRecord, error) {
	fields, err := r.client.HGetAll(ctx, statusKey(offerID, version)).Result()
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository list error: %w", err)
	}

	records := make([]entities.DispatchRecord, 0, len(fields))
	for _, raw := range fields {
		var record entities.DispatchRecord
		err := json.Unmarshal([]byte(raw), &record)
		if err != nil {
			return nil, fmt.Errorf("unexpected dispatch repository list error: %w", err)
		}
		records = append(records, record)
	}

	// порядок полей hash не определён
	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})

	return records, nil
}

func statusKey(offerID string, version int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, offerID, version)
}
