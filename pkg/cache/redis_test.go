package cache

import (
	"context"
	"testing"
	"time"
)

func TestDialRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 is never a Redis server; the dial fails after the retries.
	c, err := DialRedis(ctx, "127.0.0.1:1", "", 0)
	if err == nil {
		c.Close()
		t.Fatal("DialRedis() succeeded against a closed port")
	}
}
