// Package draft persists in-progress booking selections so a patient can
// leave the flow and resume it later with the provider, service, date,
// and time still filled in.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carebook/carebook-platform/internal/schedule"
	"github.com/carebook/carebook-platform/pkg/logging"
)

// BookingDraft is a partially completed booking. Date and Time are
// optional until the patient picks them; ProviderID is what the draft is
// keyed by, so a draft never leaks across providers.
type BookingDraft struct {
	ProviderID      string         `json:"provider_id"`
	ProviderName    string         `json:"provider_name"`
	ProviderAddress string         `json:"provider_address,omitempty"`
	ProviderImage   string         `json:"provider_image,omitempty"`
	Service         string         `json:"service,omitempty"`
	Date            *schedule.Date `json:"date,omitempty"`
	Time            string         `json:"time,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Store keeps booking drafts in redis, one per provider, with a TTL so
// abandoned drafts clean themselves up.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a draft store. A zero ttl falls back to 24 hours.
func NewStore(redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if redisClient == nil {
		panic("draft: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{redis: redisClient, ttl: ttl, logger: logger}
}

func (s *Store) key(providerID string) string {
	return fmt.Sprintf("booking:draft:%s", providerID)
}

// Save writes the draft under its provider's key, resetting the TTL.
func (s *Store) Save(ctx context.Context, d *BookingDraft) error {
	if d == nil || d.ProviderID == "" {
		return fmt.Errorf("draft: provider id required")
	}
	d.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(d.ProviderID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft: save draft for %s: %w", d.ProviderID, err)
	}
	return nil
}

// Load returns the draft for a provider, or nil when none exists. A
// stored draft whose provider id does not match the key it sits under is
// stale cross-provider state: it is deleted and treated as absent.
func (s *Store) Load(ctx context.Context, providerID string) (*BookingDraft, error) {
	data, err := s.redis.Get(ctx, s.key(providerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draft: load draft for %s: %w", providerID, err)
	}

	var d BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		s.logger.Warn("dropping unreadable booking draft", "provider_id", providerID, "error", err)
		_ = s.redis.Del(ctx, s.key(providerID)).Err()
		return nil, nil
	}

	if d.ProviderID != providerID {
		s.logger.Warn("dropping mismatched booking draft",
			"key_provider_id", providerID, "draft_provider_id", d.ProviderID)
		_ = s.redis.Del(ctx, s.key(providerID)).Err()
		return nil, nil
	}

	return &d, nil
}

// Clear removes the draft for a provider. Clearing an absent draft is
// not an error.
func (s *Store) Clear(ctx context.Context, providerID string) error {
	if err := s.redis.Del(ctx, s.key(providerID)).Err(); err != nil {
		return fmt.Errorf("draft: clear draft for %s: %w", providerID, err)
	}
	return nil
}
