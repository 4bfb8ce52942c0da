package sessionstore

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StartJanitor purges state older than ttl from every purger, once at start
// and then on each interval tick, until ctx is done.
func StartJanitor(ctx context.Context, interval, ttl time.Duration, log zerolog.Logger, purgers ...Purger) {
	if interval <= 0 || len(purgers) == 0 {
		log.Warn().Msg("session janitor disabled")
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		Sweep(ctx, time.Now().Add(-ttl), log, purgers...)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				Sweep(ctx, now.Add(-ttl), log, purgers...)
			}
		}
	}()
}

// Sweep runs one purge pass and returns the number of removed entries.
func Sweep(ctx context.Context, cutoff time.Time, log zerolog.Logger, purgers ...Purger) int64 {
	var total int64
	for _, p := range purgers {
		n, err := p.Purge(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Msg("purge expired wizard sessions")
			continue
		}
		total += n
	}
	if total > 0 {
		log.Info().Int64("removed", total).Msg("purged expired wizard sessions")
	}
	return total
}
