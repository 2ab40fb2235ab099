package watchlist

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"
)

// ErrToggleInFlight is returned when another toggle for the same
// (user, title) pair has not finished yet, e.g. on a double click.
var ErrToggleInFlight = errors.New("toggle already in flight")

const guardTTL = 3 * time.Second

// Guard serializes toggles per (user, title) across instances with a
// short-lived Redis lock.
type Guard struct {
	redis *cs.RedisClient
}

func NewGuard(redis *cs.RedisClient) *Guard {
	if redis == nil {
		return nil
	}
	return &Guard{
		redis: redis,
	}
}

func (s *Guard) key(uID, titleID uuid.UUID) string {
	return fmt.Sprintf("watchlist:toggle:%v:%v", uID, titleID)
}

func (s *Guard) Acquire(ctx context.Context, uID, titleID uuid.UUID) (bool, error) {
	cl := s.client()
	if cl == nil {
		return true, nil
	}
	ok, err := cl.SetNX(ctx, s.key(uID, titleID), 1, guardTTL).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to acquire toggle guard")
	}
	return ok, nil
}

func (s *Guard) Release(ctx context.Context, uID, titleID uuid.UUID) {
	cl := s.client()
	if cl == nil {
		return
	}
	_ = cl.Del(ctx, s.key(uID, titleID)).Err()
}

func (s *Guard) client() redis.UniversalClient {
	if s == nil || s.redis == nil {
		return nil
	}
	return s.redis.Get()
}
