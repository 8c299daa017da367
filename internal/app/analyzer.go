package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"daraz_reviews/internal/adapters/observability"
	"daraz_reviews/internal/domain"
)

const (
	MaxClassifyChars = 512
	TopIssues        = 5
)

type ReviewAnalyzer struct {
	clf domain.SentimentClassifier
}

func NewReviewAnalyzer(clf domain.SentimentClassifier) *ReviewAnalyzer {
	return &ReviewAnalyzer{clf: clf}
}

// Classify labels every review, in order. A review that cannot be classified
// is Neutral and carries the cause.
func (a *ReviewAnalyzer) Classify(ctx context.Context, reviews []domain.Review) []domain.Classification {
	out := make([]domain.Classification, len(reviews))
	for i, r := range reviews {
		out[i] = a.classifyOne(ctx, r)
		observability.ObserveSentiment(string(out[i].Label))
	}
	return out
}

func (a *ReviewAnalyzer) classifyOne(ctx context.Context, r domain.Review) domain.Classification {
	if r.Content == nil {
		return domain.Classification{Label: domain.Neutral, Err: domain.ErrEmptyContent}
	}
	s, err := a.clf.Classify(ctx, truncateChars(*r.Content, MaxClassifyChars))
	if err != nil {
		log.Debug().Err(err).Msg("classification failed, using NEUTRAL")
		return domain.Classification{Label: domain.Neutral, Err: fmt.Errorf("classify: %w", err)}
	}
	switch s.Label {
	case domain.Positive, domain.Negative, domain.Neutral:
		return domain.Classification{Label: s.Label}
	}
	return domain.Classification{Label: domain.Neutral, Err: fmt.Errorf("%w: %q", domain.ErrUnknownLabel, s.Label)}
}

// Analyze classifies and aggregates. The classifier is not called for an
// empty set.
func (a *ReviewAnalyzer) Analyze(ctx context.Context, reviews []domain.Review) domain.AnalysisResult {
	if len(reviews) == 0 {
		return domain.AnalysisResult{}
	}
	labels := a.Classify(ctx, reviews)
	return Aggregate(reviews, labels)
}

// Aggregate builds the result from reviews and their parallel labels.
// Reviews without a label count as neutral; labels past the last review are
// ignored.
func Aggregate(reviews []domain.Review, labels []domain.Classification) domain.AnalysisResult {
	res := domain.AnalysisResult{Total: len(reviews)}
	counts := make(map[domain.IssueCategory]int, len(domain.IssueKeywords))
	if len(labels) > len(reviews) {
		labels = labels[:len(reviews)]
	}
	for i, c := range labels {
		switch c.Label {
		case domain.Positive:
			res.Positive++
		case domain.Negative:
			res.Negative++
			if reviews[i].Content == nil {
				continue
			}
			if cat, ok := ClassifyIssue(*reviews[i].Content); ok {
				counts[cat]++
			}
		}
	}
	res.Neutral = res.Total - res.Positive - res.Negative
	res.Issues = rankIssues(counts)
	return res
}

// rankIssues orders by count desc; equal counts keep taxonomy order.
func rankIssues(counts map[domain.IssueCategory]int) []domain.IssueCount {
	out := make([]domain.IssueCount, 0, len(counts))
	for _, cat := range domain.IssueKeywords {
		if n := counts[cat.Category]; n > 0 {
			out = append(out, domain.IssueCount{Issue: cat.Category, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > TopIssues {
		out = out[:TopIssues]
	}
	return out
}

func truncateChars(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
