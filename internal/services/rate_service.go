package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	rateCacheKey      = "rate:bcv:usd-ves"
	rateStaleCacheKey = "rate:bcv:usd-ves:stale"
)

// RateService serves the BCV USD/VES reference rate for display conversion.
// The upstream value is cached in Redis; when the upstream fails, the last
// good value is served marked stale.
type RateService struct {
	upstreamURL string
	cacheTTL    time.Duration
	redis       *redis.Client
	httpClient  *http.Client
	logger      *logrus.Entry
}

func NewRateService(upstreamURL string, cacheTTL time.Duration, redisClient *redis.Client, logger *logrus.Logger) *RateService {
	return &RateService{
		upstreamURL: upstreamURL,
		cacheTTL:    cacheTTL,
		redis:       redisClient,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger.WithField("component", "rate-service"),
	}
}

// upstreamRate matches the dolarapi.com response shape
type upstreamRate struct {
	Promedio float64 `json:"promedio"`
	Fecha    string  `json:"fechaActualizacion"`
}

// GetRate returns the cached rate, fetching from upstream on miss. On
// upstream failure the last good value is served with Stale set.
func (s *RateService) GetRate(ctx context.Context) (*models.ExchangeRate, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, rateCacheKey).Result(); err == nil {
			var rate models.ExchangeRate
			if err := json.Unmarshal([]byte(val), &rate); err == nil {
				return &rate, nil
			}
		}
	}

	rate, err := s.fetchUpstream(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Upstream rate fetch failed, trying stale value")
		if stale := s.staleRate(ctx); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(rate); err == nil {
			s.redis.Set(ctx, rateCacheKey, data, s.cacheTTL)
			// The stale copy never expires; it backs the fallback path.
			s.redis.Set(ctx, rateStaleCacheKey, data, 0)
		}
	}

	return rate, nil
}

func (s *RateService) fetchUpstream(ctx context.Context) (*models.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstreamURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var upstream upstreamRate
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}
	if upstream.Promedio <= 0 {
		return nil, fmt.Errorf("upstream returned invalid rate %f", upstream.Promedio)
	}

	return &models.ExchangeRate{
		Currency:  "VES",
		Rate:      upstream.Promedio,
		Source:    "BCV",
		FetchedAt: time.Now(),
	}, nil
}

func (s *RateService) staleRate(ctx context.Context) *models.ExchangeRate {
	if s.redis == nil {
		return nil
	}
	val, err := s.redis.Get(ctx, rateStaleCacheKey).Result()
	if err != nil {
		return nil
	}
	var rate models.ExchangeRate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		return nil
	}
	rate.Stale = true
	return &rate
}
