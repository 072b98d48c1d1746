package utils

import (
	"context"
	"time"
)

const DefaultStoreTimeout = 5 * time.Second

// WithStoreTimeout bounds a single credential-store round trip.
func WithStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultStoreTimeout)
}
