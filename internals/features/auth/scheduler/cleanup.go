package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	authService "akcert_backend/internals/features/auth/service"
)

// StartSessionCleanupScheduler reclaims rows of sessions that already ran
// out. Validity itself is decided on access by Authority.Check.
func StartSessionCleanupScheduler(ctx context.Context, authority *authService.Authority, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			RunSessionCleanup(ctx, authority)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func RunSessionCleanup(ctx context.Context, authority *authService.Authority) {
	n, err := authority.PurgeExpired(ctx)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("[CLEANUP] failed to purge expired admin sessions")
	case n > 0:
		log.Info().Int64("deleted", n).Msg("[CLEANUP] expired admin sessions removed")
	default:
		log.Debug().Msg("[CLEANUP] no expired admin sessions")
	}
}
