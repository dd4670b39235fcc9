package jobs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Scheduler struct {
	cron  *cron.Cron
	db    *pgxpool.Pool
	cache *redis.Client
	log   zerolog.Logger
}

func NewScheduler(db *pgxpool.Pool, cache *redis.Client, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		db:    db,
		cache: cache,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.db != nil {
		if _, err := s.cron.AddFunc("0 0 0 * * *", s.snapshotStats); err != nil {
			return err
		}
	}
	if s.cache != nil {
		if _, err := s.cron.AddFunc("0 30 0 * * *", s.sweepRateLimitKeys); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) snapshotStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const query = `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM establishments),
			(SELECT COUNT(*) FROM genres),
			(SELECT COUNT(*) FROM artists),
			(SELECT COUNT(*) FROM users)`

	var events, establishments, genres, artists, users int64
	if err := s.db.QueryRow(ctx, query).Scan(&events, &establishments, &genres, &artists, &users); err != nil {
		s.log.Error().Err(err).Msg("stats snapshot failed")
		return
	}

	s.log.Info().
		Int64("events", events).
		Int64("establishments", establishments).
		Int64("genres", genres).
		Int64("artists", artists).
		Int64("users", users).
		Msg("daily catalog stats")
}

// sweepRateLimitKeys removes rate-limit counters that were written
// without an expiry. The limiter sets EXPIRE on a key's first increment
// but fails open, so a redis hiccup at that moment can leave a counter
// behind forever.
func (s *Scheduler) sweepRateLimitKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.cache.Scan(ctx, cursor, "rl:*", 100).Result()
		if err != nil {
			s.log.Error().Err(err).Msg("rate limit sweep failed")
			return
		}

		for _, key := range keys {
			ttl, err := s.cache.TTL(ctx, key).Result()
			if err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("rate limit ttl check failed")
				continue
			}
			// Keys with a live window have a positive TTL; anything
			// else is an orphan or already gone.
			if ttl < 0 {
				if err := s.cache.Del(ctx, key).Err(); err != nil {
					s.log.Warn().Err(err).Str("key", key).Msg("rate limit key delete failed")
					continue
				}
				removed++
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("orphaned rate limit keys swept")
	}
}
