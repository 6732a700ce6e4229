package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	cacheKey = "settings:v1"
	cacheTTL = 5 * time.Minute
)

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req *UpdateRequest) (*Settings, error)
}

type service struct {
	repo   Repository
	cache  *redis.Client
	logger zerolog.Logger
}

// NewService wraps the repository with a short-lived Redis cache. The cache
// client may be nil, in which case every read hits Postgres.
func NewService(repo Repository, cache *redis.Client, logger zerolog.Logger) Service {
	return &service{repo: repo, cache: cache, logger: logger}
}

func (s *service) Get(ctx context.Context) (*Settings, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached Settings
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("settings cache read failed")
		}
	}

	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, cur)
	return cur, nil
}

func (s *service) Update(ctx context.Context, req *UpdateRequest) (*Settings, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	req.apply(cur)
	if cur.FreeTokensPerUser < 0 {
		return nil, fmt.Errorf("%w: free_tokens_per_user must be >= 0", ErrValidation)
	}
	switch cur.BackgroundType {
	case "image", "video":
	default:
		return nil, fmt.Errorf("%w: background_type must be image or video", ErrValidation)
	}

	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	updated, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, updated)
	return updated, nil
}

func (s *service) fill(ctx context.Context, cur *Settings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cur)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("settings cache write failed")
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("settings cache invalidation failed")
	}
}
