package app

import (
	"context"
	"regexp"

	"github.com/rs/zerolog/log"

	"daraz_reviews/internal/adapters/observability"
	"daraz_reviews/internal/domain"
)

const PageSize = 20

var productIDRe = regexp.MustCompile(`-i(\d+)`)

// ExtractProductID returns the numeric id from a "...-i<digits>..." URL.
func ExtractProductID(url string) (string, bool) {
	m := productIDRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type ReviewFetcher struct {
	src domain.ReviewSource
}

func NewReviewFetcher(src domain.ReviewSource) *ReviewFetcher {
	return &ReviewFetcher{src: src}
}

// Fetch returns the reviews of pages 1..maxPages, best-effort.
func (f *ReviewFetcher) Fetch(ctx context.Context, url string, maxPages int) []domain.Review {
	return f.FetchPages(ctx, url, maxPages).Reviews()
}

// FetchPages walks pages sequentially. A failed page is recorded and skipped;
// the first empty page ends the walk.
func (f *ReviewFetcher) FetchPages(ctx context.Context, url string, maxPages int) domain.FetchReport {
	id, ok := ExtractProductID(url)
	if !ok {
		log.Debug().Str("url", url).Msg("no product id in url")
		return domain.FetchReport{Unresolved: true}
	}

	rep := domain.FetchReport{ProductID: id}
	for page := 1; page <= maxPages; page++ {
		items, err := f.src.GetReviewPage(ctx, id, page, PageSize)
		if err != nil {
			log.Warn().Err(err).Str("product_id", id).Int("page", page).Msg("review page skipped")
			observability.ObservePage("error")
			rep.Pages = append(rep.Pages, domain.PageResult{Page: page, Err: err})
			continue
		}

		pr := domain.PageResult{Page: page, Reviews: mapReviews(items)}
		rep.Pages = append(rep.Pages, pr)
		if pr.Empty() {
			observability.ObservePage("empty")
			break
		}
		observability.ObservePage("ok")
	}
	return rep
}
