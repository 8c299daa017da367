package app

import (
	"encoding/json"
	"fmt"

	"daraz_reviews/internal/domain"
)

const SampleReviews = 3

type Report struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    ReportData `json:"data"`
}

type ReportData struct {
	ReviewsCount  int                 `json:"reviews_count"`
	Sentiment     *SentimentSummary   `json:"sentiment"`
	CommonIssues  []domain.IssueCount `json:"common_issues"`
	SampleReviews []domain.Review     `json:"sample_reviews"`
}

type SentimentSummary struct {
	Positive        int    `json:"positive"`
	Negative        int    `json:"negative"`
	Neutral         int    `json:"neutral"`
	PositivePercent string `json:"positive_percent"`
	NegativePercent string `json:"negative_percent"`
}

// MarshalJSON renders the "no reviews" shape as {"reviews_count":0,"analysis":null}.
func (d ReportData) MarshalJSON() ([]byte, error) {
	if d.Sentiment == nil {
		return json.Marshal(struct {
			ReviewsCount int  `json:"reviews_count"`
			Analysis     *any `json:"analysis"`
		}{ReviewsCount: d.ReviewsCount})
	}
	type plain ReportData
	p := plain(d)
	if p.CommonIssues == nil {
		p.CommonIssues = []domain.IssueCount{}
	}
	return json.Marshal(p)
}

func NoReviewsReport() Report {
	return Report{Status: "success", Message: "No reviews found"}
}

func buildReport(reviews []domain.Review, res domain.AnalysisResult) Report {
	samples := reviews
	if len(samples) > SampleReviews {
		samples = samples[:SampleReviews]
	}
	return Report{
		Status: "success",
		Data: ReportData{
			ReviewsCount: res.Total,
			Sentiment: &SentimentSummary{
				Positive:        res.Positive,
				Negative:        res.Negative,
				Neutral:         res.Neutral,
				PositivePercent: percent(res.Positive, res.Total),
				NegativePercent: percent(res.Negative, res.Total),
			},
			CommonIssues:  res.Issues,
			SampleReviews: append([]domain.Review(nil), samples...),
		},
	}
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
