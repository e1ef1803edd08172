package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ratesCacheKey     = "currency:rates"
	preferencePrefix  = "currency:pref:"
	defaultPrefExpiry = 30 * 24 * time.Hour
)

// Service resolves exchange rates and per-session currency preferences. Rates
// are cached in Redis with a TTL; when both the cache and the upstream
// provider fail the service degrades to the identity table rather than
// erroring, so a price is always displayable.
type Service struct {
	Provider    RateProvider
	Redis       *redis.Client
	CacheTTL    time.Duration
	DefaultCode string
	Logger      *zerolog.Logger
}

// Rates returns the current rate table. Never fails; degraded lookups fall
// back to the identity table.
func (s *Service) Rates(ctx context.Context) Table {
	if s.Redis != nil {
		data, err := s.Redis.Get(ctx, ratesCacheKey).Bytes()
		if err == nil {
			var table Table
			if json.Unmarshal(data, &table) == nil && len(table) > 0 {
				return table
			}
		} else if err != redis.Nil && s.Logger != nil {
			s.Logger.Warn().Err(err).Msg("rates cache read failed")
		}
	}
	if s.Provider != nil {
		table, err := s.Provider.Rates(ctx)
		if err == nil && len(table) > 0 {
			s.storeCache(ctx, table)
			return table
		}
		if err != nil && s.Logger != nil {
			s.Logger.Warn().Err(err).Msg("rate provider failed, using identity table")
		}
	}
	return Identity()
}

func (s *Service) storeCache(ctx context.Context, table Table) {
	if s.Redis == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	data, err := json.Marshal(table)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, ratesCacheKey, data, ttl).Err(); err != nil && s.Logger != nil {
		s.Logger.Warn().Err(err).Msg("rates cache write failed")
	}
}

// Preference returns the stored display currency for a session, falling back
// to the configured default and finally to USD.
func (s *Service) Preference(ctx context.Context, sessionID string) Info {
	if s.Redis != nil && sessionID != "" {
		code, err := s.Redis.Get(ctx, preferencePrefix+sessionID).Result()
		if err == nil {
			if info, ok := Lookup(code); ok {
				return info
			}
		}
	}
	if info, ok := Lookup(s.DefaultCode); ok {
		return info
	}
	info, _ := Lookup("USD")
	return info
}

// SetPreference stores a session's display currency. Unsupported codes are
// rejected.
func (s *Service) SetPreference(ctx context.Context, sessionID, code string) (Info, error) {
	info, ok := Lookup(code)
	if !ok {
		return Info{}, fmt.Errorf("unsupported currency %q", code)
	}
	if s.Redis == nil || sessionID == "" {
		return info, nil
	}
	if err := s.Redis.Set(ctx, preferencePrefix+sessionID, info.Code, defaultPrefExpiry).Err(); err != nil {
		return Info{}, fmt.Errorf("store currency preference: %w", err)
	}
	return info, nil
}
