package app_test

import (
	"encoding/json"
	"testing"

	"daraz_reviews/internal/app"
)

func TestNoReviewsReport_JSONShape(t *testing.T) {
	b, err := json.Marshal(app.NoReviewsReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"status":"success","message":"No reviews found","data":{"reviews_count":0,"analysis":null}}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestReport_JSONShape(t *testing.T) {
	rep := app.Report{
		Status: "success",
		Data: app.ReportData{
			ReviewsCount:  1,
			Sentiment:     &app.SentimentSummary{Positive: 1, PositivePercent: "100.0%", NegativePercent: "0.0%"},
			SampleReviews: reviews("good"),
		},
	}
	b, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"status":"success","data":{"reviews_count":1,` +
		`"sentiment":{"positive":1,"negative":0,"neutral":0,"positive_percent":"100.0%","negative_percent":"0.0%"},` +
		`"common_issues":[],` +
		`"sample_reviews":[{"author":null,"rating":null,"date":null,"content":"good","likes":null}]}}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}

	// cached reports come back through plain decoding
	var back app.Report
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Data.Sentiment == nil || back.Data.Sentiment.PositivePercent != "100.0%" || *back.Data.SampleReviews[0].Content != "good" {
		t.Fatalf("unexpected decode: %+v", back)
	}
}
