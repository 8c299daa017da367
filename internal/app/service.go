package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"daraz_reviews/internal/domain"
)

const (
	MarketplaceDomain = "daraz.pk"
	MaxPagesLimit     = 3
)

type AnalysisService struct {
	fetcher  *ReviewFetcher
	analyzer *ReviewAnalyzer
	cache    domain.Cache
	cacheTTL time.Duration
	history  domain.AnalysisRecorder
	clock    Clock
}

// NewAnalysisService wires the pipeline. cache and history may be nil;
// a zero ttl disables caching.
func NewAnalysisService(f *ReviewFetcher, a *ReviewAnalyzer, c domain.Cache, ttl time.Duration, h domain.AnalysisRecorder) *AnalysisService {
	return &AnalysisService{fetcher: f, analyzer: a, cache: c, cacheTTL: ttl, history: h, clock: SystemClock{}}
}

// WithClock swaps the time source used for history records.
func (s *AnalysisService) WithClock(c Clock) *AnalysisService {
	s.clock = c
	return s
}

// ValidateRequest applies the coarse input checks.
func ValidateRequest(url string, maxPages int) error {
	if !strings.Contains(url, MarketplaceDomain) {
		return fmt.Errorf("%w: Invalid Daraz URL", domain.ErrInvalidInput)
	}
	if maxPages < 1 || maxPages > MaxPagesLimit {
		return fmt.Errorf("%w: max_pages must be between 1 and %d", domain.ErrInvalidInput, MaxPagesLimit)
	}
	return nil
}

// AnalyzeURL runs fetch then analyze for one product URL. Once validated,
// the run is detached from ctx cancellation: it completes or fails on its
// own, bounded only by the per-call transport timeout.
func (s *AnalysisService) AnalyzeURL(ctx context.Context, url string, maxPages int) (Report, error) {
	if err := ValidateRequest(url, maxPages); err != nil {
		return Report{}, err
	}
	ctx = context.WithoutCancel(ctx)

	key := ""
	if id, ok := ExtractProductID(url); ok && s.cacheEnabled() {
		key = fmt.Sprintf("analysis:%s:%d", id, maxPages)
		var cached Report
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	log.Info().Str("url", url).Int("max_pages", maxPages).Msg("fetching reviews")
	fr := s.fetcher.FetchPages(ctx, url, maxPages)
	reviews := fr.Reviews()
	if len(reviews) == 0 {
		log.Info().Err(fr.Err()).Str("url", url).Int("failed_pages", fr.Failed()).Msg("no reviews found")
		return NoReviewsReport(), nil
	}

	res := s.analyzer.Analyze(ctx, reviews)
	out := buildReport(reviews, res)

	s.record(ctx, fr, maxPages, res)
	if key != "" {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// History lists recent aggregate results for a product, newest first.
func (s *AnalysisService) History(ctx context.Context, productID string, limit int) ([]domain.AnalysisRecord, error) {
	if s.history == nil {
		return nil, domain.ErrNotFound
	}
	recs, err := s.history.ListRecent(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrNotFound
	}
	return recs, nil
}

func (s *AnalysisService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// record is best-effort; a failing history store never fails the request.
func (s *AnalysisService) record(ctx context.Context, fr domain.FetchReport, maxPages int, res domain.AnalysisResult) {
	if s.history == nil {
		return
	}
	rec := domain.AnalysisRecord{
		ID:          uuid.NewString(),
		ProductID:   fr.ProductID,
		MaxPages:    maxPages,
		Total:       res.Total,
		Positive:    res.Positive,
		Negative:    res.Negative,
		Neutral:     res.Neutral,
		Issues:      res.Issues,
		FailedPages: fr.Failed(),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		log.Warn().Err(err).Str("product_id", fr.ProductID).Msg("record analysis failed")
	}
}
