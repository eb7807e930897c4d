package tickets

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultClaimPrefix = "aisha:ticket:"

// RedisClaimer implements Claimer with a SETNX key per session, so multiple
// replicas preserve the at-most-one-ticket invariant.
type RedisClaimer struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func (c *RedisClaimer) key(sessionID string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = defaultClaimPrefix
	}
	return prefix + sessionID
}

func (c *RedisClaimer) TryClaim(ctx context.Context, sessionID, ticketNo string) (bool, error) {
	return c.Client.SetNX(ctx, c.key(sessionID), ticketNo, c.TTL).Result()
}

func (c *RedisClaimer) Release(ctx context.Context, sessionID string) error {
	return c.Client.Del(ctx, c.key(sessionID)).Err()
}
