package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper remembers webhook message ids so a redelivered message is
// answered once. Keys expire after the window; a lost Redis means we
// answer twice rather than never, so errors report as first-seen.
type Deduper struct {
	client *redis.Client
	window time.Duration
}

func New(redisURL string, window time.Duration) (*Deduper, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Deduper{
		client: redis.NewClient(opts),
		window: window,
	}, nil
}

// Seen marks messageID and reports whether it was already recorded
// inside the window. A nil Deduper reports everything as first-seen,
// so running without Redis only disables deduplication.
func (d *Deduper) Seen(ctx context.Context, messageID string) (bool, error) {
	if d == nil || messageID == "" {
		return false, nil
	}
	key := "wh:msg:" + messageID
	set, err := d.client.SetNX(ctx, key, 1, d.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe setnx: %w", err)
	}
	return !set, nil
}

func (d *Deduper) Close() error {
	if d == nil {
		return nil
	}
	return d.client.Close()
}
