package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"daraz_reviews/internal/adapters/daraz"
	"daraz_reviews/internal/adapters/observability"
	"daraz_reviews/internal/adapters/sentiment"
	"daraz_reviews/internal/app"
	"daraz_reviews/internal/shared"
)

type runOpts struct {
	maxPages int
	workers  int
	format   string
	backend  string
}

// Analyzer is the part of app.AnalysisService the command needs.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string, maxPages int) (app.Report, error)
}

// newAnalyzer is replaced in tests.
var newAnalyzer = func(cfg shared.Config) (Analyzer, error) {
	clf, err := sentiment.New(cfg.SentimentBackend, cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	if err != nil {
		return nil, err
	}
	src := daraz.New(cfg.DarazBase, cfg.DarazRPS, cfg.DarazTimeoutDuration(), cfg.DarazAttempts)
	return app.NewAnalysisService(app.NewReviewFetcher(src), app.NewReviewAnalyzer(clf), nil, 0, nil), nil
}

func newRunCmd() *cobra.Command {
	o := &runOpts{}
	cmd := &cobra.Command{
		Use:   "run URL [URL...]",
		Short: "Analyze one or more product URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.maxPages < 1 || o.maxPages > app.MaxPagesLimit {
				return fmt.Errorf("--max-pages must be between 1 and %d", app.MaxPagesLimit)
			}
			if o.format != "json" && o.format != "text" {
				return fmt.Errorf("--format must be json or text")
			}
			cfg := shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
			if o.backend != "" {
				cfg.SentimentBackend = o.backend
			}
			if o.workers <= 0 {
				o.workers = cfg.Workers
			}
			a, err := newAnalyzer(cfg)
			if err != nil {
				exitCode = ExitRuntimeError
				return err
			}
			results := analyzeAll(cmd.Context(), a, args, o.maxPages, o.workers)
			if err := writeResults(cmd.OutOrStdout(), o.format, results); err != nil {
				exitCode = ExitRuntimeError
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					exitCode = ExitRuntimeError
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&o.maxPages, "max-pages", 1, "Review pages to fetch per product (1-3)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Products analyzed concurrently (default CLI_WORKERS)")
	cmd.Flags().StringVar(&o.format, "format", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&o.backend, "backend", "", "Sentiment backend (openai, lexicon)")
	return cmd
}

type result struct {
	URL    string
	Report app.Report
	Err    error
}

// analyzeAll runs one independent pipeline per URL, at most workers at a
// time. Results keep the input order.
func analyzeAll(ctx context.Context, a Analyzer, urls []string, maxPages, workers int) []result {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers <= 0 {
		workers = 1
	}
	out := make([]result, len(urls))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, u := range urls {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			out[i] = result{URL: u, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer sem.Release(1)
			rep, err := a.AnalyzeURL(ctx, u, maxPages)
			if err != nil {
				log.Warn().Str("url", u).Err(err).Msg("analysis failed")
			}
			out[i] = result{URL: u, Report: rep, Err: err}
		}(i, u)
	}
	wg.Wait()
	return out
}

func writeResults(w io.Writer, format string, results []result) error {
	if format == "json" {
		type item struct {
			URL    string      `json:"url"`
			Report *app.Report `json:"report,omitempty"`
			Error  string      `json:"error,omitempty"`
		}
		items := make([]item, 0, len(results))
		for _, r := range results {
			it := item{URL: r.URL}
			if r.Err != nil {
				it.Error = r.Err.Error()
			} else {
				rep := r.Report
				it.Report = &rep
			}
			items = append(items, it)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s\n", r.URL)
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "  error: %v\n", r.Err)
		case r.Report.Data.Sentiment == nil:
			fmt.Fprintf(w, "  %s\n", r.Report.Message)
		default:
			d := r.Report.Data
			s := d.Sentiment
			fmt.Fprintf(w, "  reviews: %d\n", d.ReviewsCount)
			fmt.Fprintf(w, "  positive: %d (%s)  negative: %d (%s)  neutral: %d\n",
				s.Positive, s.PositivePercent, s.Negative, s.NegativePercent, s.Neutral)
			for _, is := range d.CommonIssues {
				fmt.Fprintf(w, "  issue %-12s %d\n", is.Issue, is.Count)
			}
		}
	}
	return nil
}
