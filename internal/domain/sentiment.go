package domain

import (
	"fmt"
	"strings"
)

type SentimentLabel string

const (
	Positive SentimentLabel = "POSITIVE"
	Negative SentimentLabel = "NEGATIVE"
	Neutral  SentimentLabel = "NEUTRAL"
)

// ParseSentimentLabel accepts labels case-insensitively.
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	switch l := SentimentLabel(strings.ToUpper(strings.TrimSpace(s))); l {
	case Positive, Negative, Neutral:
		return l, nil
	}
	return "", fmt.Errorf("%w: sentiment label %q", ErrUnknownLabel, s)
}

// Sentiment is what a classifier returns. Confidence is informational only.
type Sentiment struct {
	Label      SentimentLabel
	Confidence float64
}

// Classification pairs a label with the error that forced it, if any.
// A failed classification always carries Neutral.
type Classification struct {
	Label SentimentLabel
	Err   error
}
