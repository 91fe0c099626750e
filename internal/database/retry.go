package database

import (
	"context"
	"time"
)

var retryBackoff = 50 * time.Millisecond

// WithRetry fn'i geçici hatalarda en fazla attempts kez çalıştırır.
// Diğer hatalar ve context iptali hemen döner.
func WithRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(retryBackoff * time.Duration(i+1))
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
	return err
}
