package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"daraz_reviews/internal/app"
	"daraz_reviews/internal/domain"
	"daraz_reviews/internal/shared"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	inflight int32
	peak     int32
	calls    []string
}

func (f *fakeAnalyzer) AnalyzeURL(ctx context.Context, url string, maxPages int) (app.Report, error) {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)

	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	switch {
	case strings.Contains(url, "fail"):
		return app.Report{}, errors.New("boom")
	case strings.Contains(url, "empty"):
		return app.NoReviewsReport(), nil
	}
	return app.Report{Status: "success", Data: app.ReportData{
		ReviewsCount: 4,
		Sentiment:    &app.SentimentSummary{Positive: 1, Negative: 2, Neutral: 1, PositivePercent: "25.0%", NegativePercent: "50.0%"},
		CommonIssues: []domain.IssueCount{{Issue: domain.IssueDelivery, Count: 2}},
	}}, nil
}

func TestAnalyzeAll_BoundedAndOrdered(t *testing.T) {
	fa := &fakeAnalyzer{}
	urls := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	res := analyzeAll(context.Background(), fa, urls, 1, 2)

	if len(res) != len(urls) {
		t.Fatalf("got %d results", len(res))
	}
	for i, r := range res {
		if r.URL != urls[i] {
			t.Fatalf("result %d out of order: %s", i, r.URL)
		}
	}
	if p := atomic.LoadInt32(&fa.peak); p > 2 {
		t.Fatalf("expected at most 2 concurrent analyses, saw %d", p)
	}
}

func TestWriteResults_Text(t *testing.T) {
	res := []result{
		{URL: "ok", Report: mustAnalyze(t, "ok")},
		{URL: "empty", Report: app.NoReviewsReport()},
		{URL: "fail", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	if err := writeResults(&buf, "text", res); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"reviews: 4", "negative: 2 (50.0%)", "delivery", "No reviews found", "error: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunCommand_JSONAndExitCode(t *testing.T) {
	fa := &fakeAnalyzer{}
	orig := newAnalyzer
	newAnalyzer = func(shared.Config) (Analyzer, error) { return fa, nil }
	t.Cleanup(func() { newAnalyzer = orig })

	exitCode = ExitSuccess
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--format", "json", "--workers", "2", "https://www.daraz.pk/a-i1", "https://www.daraz.pk/fail-i2"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var items []struct {
		URL    string          `json:"url"`
		Report json.RawMessage `json:"report"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &items); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if len(items) != 2 || items[0].Error != "" || items[1].Error != "boom" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if exitCode != ExitRuntimeError {
		t.Fatalf("expected runtime error exit code when one URL fails, got %d", exitCode)
	}
}

func TestRunCommand_RejectsBadMaxPages(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--max-pages", "5", "https://www.daraz.pk/a-i1"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for --max-pages 5")
	}
}

func mustAnalyze(t *testing.T, url string) app.Report {
	t.Helper()
	rep, err := (&fakeAnalyzer{}).AnalyzeURL(context.Background(), url, 1)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return rep
}
