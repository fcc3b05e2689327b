package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"colvote.com/internal/constants"
)

// RevocationList is a Redis-backed token denylist. Logout writes the token's
// jti with a TTL equal to the token's remaining lifetime, so entries expire on
// their own once the token would have died anyway.
type RevocationList struct {
	rdb *redis.Client
}

func NewRevocationList(rdb *redis.Client) *RevocationList {
	return &RevocationList{rdb: rdb}
}

// Revoke denylists a token ID for the remaining token lifetime.
func (r *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	return r.rdb.Set(ctx, constants.RedisKeyRevokedToken+jti, "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been denylisted.
func (r *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.rdb.Get(ctx, constants.RedisKeyRevokedToken+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
