package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"xflyve-service/internal/model"
)

// AssignmentCache keeps per-driver daily assignment lookups in redis.
// A nil client disables caching entirely; callers never have to branch.
type AssignmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAssignmentCache(client *redis.Client, ttl time.Duration) *AssignmentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AssignmentCache{client: client, ttl: ttl}
}

func assignmentKey(driverID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("assignment:%s:%s", driverID, date.UTC().Format("2006-01-02"))
}

// Get returns the cached assignment, or ok=false on a miss or any redis
// failure. Cache errors never surface to callers.
func (c *AssignmentCache) Get(ctx context.Context, driverID uuid.UUID, date time.Time) (*model.DailyTruckAssignment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, assignmentKey(driverID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var assignment model.DailyTruckAssignment
	if err := json.Unmarshal(raw, &assignment); err != nil {
		return nil, false
	}
	return &assignment, true
}

func (c *AssignmentCache) Set(ctx context.Context, assignment *model.DailyTruckAssignment) {
	if c == nil || c.client == nil || assignment == nil {
		return
	}

	raw, err := json.Marshal(assignment)
	if err != nil {
		return
	}
	c.client.Set(ctx, assignmentKey(assignment.DriverID, assignment.Date), raw, c.ttl)
}

func (c *AssignmentCache) Invalidate(ctx context.Context, driverID uuid.UUID, date time.Time) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, assignmentKey(driverID, date))
}
