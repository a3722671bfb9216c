// internal/common/auth/revocation.go
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "token:revoked:"

// Revocations is the Redis-backed deny list filled by logout.
type Revocations struct {
	rdb redis.Cmdable
}

func NewRevocations(rdb redis.Cmdable) *Revocations {
	return &Revocations{rdb: rdb}
}

// RevocationKey is the Redis key for a token. Tokens are stored hashed.
func RevocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}

// Revoke denies token until it would have expired anyway.
func (r *Revocations) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, RevocationKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Revocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.rdb.Get(ctx, RevocationKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}
