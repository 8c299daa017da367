package domain

import (
	"context"
	"time"
)

// ReviewSource returns the raw items of one review page for a product.
// An empty slice with nil error means there are no more reviews.
type ReviewSource interface {
	GetReviewPage(ctx context.Context, productID string, page, pageSize int) ([]map[string]any, error)
}

// SentimentClassifier is the black-box model. Implementations are created
// once and must be safe for concurrent use.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (Sentiment, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// AnalysisRecorder keeps aggregate history. It never sees review text.
type AnalysisRecorder interface {
	Record(ctx context.Context, rec AnalysisRecord) error
	ListRecent(ctx context.Context, productID string, limit int) ([]AnalysisRecord, error)
}

type AnalysisRecord struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	MaxPages    int          `json:"max_pages"`
	Total       int          `json:"total"`
	Positive    int          `json:"positive"`
	Negative    int          `json:"negative"`
	Neutral     int          `json:"neutral"`
	Issues      []IssueCount `json:"issues"`
	FailedPages int          `json:"failed_pages"`
	CreatedAt   time.Time    `json:"created_at"`
}
