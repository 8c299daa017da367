// internal/adapters/daraz/client.go
package daraz

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"daraz_reviews/internal/adapters/observability"
	"daraz_reviews/internal/domain"
)

const (
	DefaultBase    = "https://my.daraz.pk"
	reviewListPath = "/pdp/review/getReviewList"
)

type Client struct {
	base     string
	hc       *http.Client
	rl       *rate.Limiter
	attempts int
}

// New builds a client. attempts is the total tries per page (1 = no retry).
func New(base string, rps int, timeout time.Duration, attempts int) *Client {
	if base == "" {
		base = DefaultBase
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if attempts <= 0 {
		attempts = 1
	}
	return &Client{
		base:     strings.TrimRight(base, "/"),
		hc:       &http.Client{Timeout: timeout},
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		attempts: attempts,
	}
}

// GetReviewPage fetches one page of review items for productID.
func (c *Client) GetReviewPage(ctx context.Context, productID string, page, pageSize int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("itemId", productID)
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("filter", "0")
	q.Set("sort", "0")
	q.Set("pageNo", strconv.Itoa(page))

	var body map[string]any
	if err := c.get(ctx, c.base+reviewListPath+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return itemsOf(body)
}

// itemsOf reads model.items. An absent model or items key is an empty page;
// a null or mistyped one is malformed.
func itemsOf(body map[string]any) ([]map[string]any, error) {
	rawModel, ok := body["model"]
	if !ok {
		return nil, nil
	}
	model, ok := rawModel.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: model is %T", domain.ErrMalformedPage, rawModel)
	}
	rawItems, ok := model["items"]
	if !ok {
		return nil, nil
	}
	list, ok := rawItems.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: items is %T", domain.ErrMalformedPage, rawItems)
	}
	out := make([]map[string]any, 0, len(list))
	for i, it := range list {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %T", domain.ErrMalformedPage, i, it)
		}
		out = append(out, m)
	}
	return out, nil
}

// ---- Internals ----

var (
	ErrNotFound  = errors.New("daraz: not found")
	ErrForbidden = errors.New("daraz: forbidden")
)

// get performs a GET with client-side rate limiting and JSON decode into out.
// With attempts > 1 it retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	status := 0
	defer func() { observability.ObserveExternal("daraz", "review_list", status, time.Since(start)) }()

	var lastErr error
	for i := 0; i < c.attempts; i++ {
		last := i == c.attempts-1

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "daraz-reviews/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if !last && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return lastErr
		}
		status = resp.StatusCode

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrMalformedPage, err)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if !last && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 200ms, 400ms, 800ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
