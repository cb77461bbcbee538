package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/graph"
)

const (
	graphKeyPrefix = "syn:graph:" // Cached graph snapshot per project: syn:graph:{project_id}
	graphTTL       = 10 * time.Minute
)

// GraphCache keeps built graph snapshots in Redis so repeated render
// requests do not rebuild the graph from the database every time. Snapshots
// are invalidated whenever a recompute touches the project.
type GraphCache struct {
	client *redis.Client
}

func NewGraphCache(client *redis.Client) *GraphCache {
	return &GraphCache{client: client}
}

func (c *GraphCache) key(projectID string) string {
	return graphKeyPrefix + projectID
}

// Get returns the cached snapshot for a project, or (nil, nil) on a miss.
func (c *GraphCache) Get(ctx context.Context, projectID string) (*graph.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(projectID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get graph snapshot: %w", err)
	}

	var snap graph.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal graph snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot with the cache TTL.
func (c *GraphCache) Set(ctx context.Context, projectID string, snap graph.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal graph snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(projectID), data, graphTTL).Err(); err != nil {
		return fmt.Errorf("set graph snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a project.
func (c *GraphCache) Invalidate(ctx context.Context, projectID string) error {
	if err := c.client.Del(ctx, c.key(projectID)).Err(); err != nil {
		return fmt.Errorf("invalidate graph snapshot: %w", err)
	}
	return nil
}
