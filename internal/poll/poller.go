// Package poll keeps the dashboard warm: a ticker re-runs the refresh so
// the first page view after a quiet stretch doesn't pay the fetch cost.
package poll

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on every tick until ctx is done.
// Task errors are logged, never fatal.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	if err := task(ctx); err != nil {
		log.Warn().Str("task", name).Err(err).Msg("task failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Warn().Str("task", name).Err(err).Msg("task failed")
			}
		}
	}
}
