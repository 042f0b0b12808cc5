package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"dellerose/models"
)

// ErrSnapshotNotFound is returned when no snapshot exists for the key.
var ErrSnapshotNotFound = errors.New("workflow snapshot not found")

// SnapshotStore persists whole aggregate snapshots in Redis, keyed by user
// and workflow. Snapshots expire after the TTL so abandoned workflows do not
// accumulate.
type SnapshotStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// DefaultSnapshotTTL keeps an idle workflow recoverable for 30 days.
const DefaultSnapshotTTL = 30 * 24 * time.Hour

func NewSnapshotStore(client goredis.UniversalClient, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

func snapshotKey(userID, workflowID string) string {
	return fmt.Sprintf("workflows:%s:%s", userID, workflowID)
}

// Save writes the snapshot and refreshes its TTL.
func (s *SnapshotStore) Save(ctx context.Context, aggregate *Aggregate) error {
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal workflow snapshot: %w", err)
	}
	key := snapshotKey(aggregate.UserID, aggregate.WorkflowID)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save workflow snapshot %s: %w", key, err)
	}
	return nil
}

// Load reads a snapshot. ErrSnapshotNotFound is returned for unknown keys.
func (s *SnapshotStore) Load(ctx context.Context, userID, workflowID string) (*Aggregate, error) {
	key := snapshotKey(userID, workflowID)
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load workflow snapshot %s: %w", key, err)
	}

	var aggregate Aggregate
	if err := json.Unmarshal(payload, &aggregate); err != nil {
		return nil, fmt.Errorf("decode workflow snapshot %s: %w", key, err)
	}
	if aggregate.Drafts == nil {
		aggregate.Drafts = make(map[models.Platform]models.AgentOutput)
	}
	if aggregate.Plans == nil {
		aggregate.Plans = make(map[models.Platform]models.PostPlan)
	}
	return &aggregate, nil
}

// Delete removes a snapshot; deleting a missing key is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, userID, workflowID string) error {
	return s.client.Del(ctx, snapshotKey(userID, workflowID)).Err()
}
