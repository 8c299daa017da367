package app_test

import (
	"context"
	"errors"
	"testing"

	"daraz_reviews/internal/app"
	"daraz_reviews/internal/domain"
)

// ---- fakes ----

type pageCall struct {
	id       string
	page     int
	pageSize int
}

type fakeSource struct {
	pages map[int][]map[string]any
	errs  map[int]error
	calls []pageCall
	// onCall runs after a page is recorded, before it is returned.
	onCall func(page int)
}

func (f *fakeSource) GetReviewPage(ctx context.Context, productID string, page, pageSize int) ([]map[string]any, error) {
	f.calls = append(f.calls, pageCall{id: productID, page: page, pageSize: pageSize})
	if f.onCall != nil {
		f.onCall(page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

func items(contents ...string) []map[string]any {
	out := make([]map[string]any, 0, len(contents))
	for _, c := range contents {
		out = append(out, map[string]any{"reviewContent": c})
	}
	return out
}

const productURL = "https://www.daraz.pk/products/wireless-earbuds-i123456789-s987654.html"

// ---- tests ----

func TestExtractProductID(t *testing.T) {
	cases := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{productURL, "123456789", true},
		{"https://www.daraz.pk/products/x-i42.html?spm=a", "42", true},
		{"https://www.daraz.pk/products/no-id-here.html", "", false},
		{"https://www.daraz.pk/products/x-iabc.html", "", false},
	}
	for _, c := range cases {
		got, ok := app.ExtractProductID(c.url)
		if got != c.want || ok != c.wantOK {
			t.Fatalf("%s: got (%q,%v) want (%q,%v)", c.url, got, ok, c.want, c.wantOK)
		}
	}
}

func TestFetch_UnresolvableURLIsEmptyNotError(t *testing.T) {
	src := &fakeSource{}
	f := app.NewReviewFetcher(src)

	rep := f.FetchPages(context.Background(), "https://www.daraz.pk/products/nothing.html", 3)
	if !rep.Unresolved || len(rep.Reviews()) != 0 || !errors.Is(rep.Err(), domain.ErrUnresolvableProduct) {
		t.Fatalf("expected unresolved empty report, got %+v", rep)
	}
	if len(src.calls) != 0 {
		t.Fatalf("source must not be called, got %d calls", len(src.calls))
	}
}

func TestFetch_StopsAtFirstEmptyPage(t *testing.T) {
	src := &fakeSource{pages: map[int][]map[string]any{
		1: items("a", "b"),
		2: {},
		3: items("never"),
	}}
	f := app.NewReviewFetcher(src)

	got := f.Fetch(context.Background(), productURL, 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
	if len(src.calls) != 2 {
		t.Fatalf("expected fetch to stop after page 2, got %d calls", len(src.calls))
	}
	c := src.calls[0]
	if c.id != "123456789" || c.page != 1 || c.pageSize != app.PageSize {
		t.Fatalf("unexpected first call: %+v", c)
	}
}

func TestFetch_FailedPageIsSkippedNotTerminal(t *testing.T) {
	src := &fakeSource{
		pages: map[int][]map[string]any{1: items("a"), 3: items("c")},
		errs:  map[int]error{2: errors.New("boom")},
	}
	f := app.NewReviewFetcher(src)

	rep := f.FetchPages(context.Background(), productURL, 3)
	if len(src.calls) != 3 {
		t.Fatalf("expected all 3 pages attempted, got %d", len(src.calls))
	}
	if rep.Failed() != 1 {
		t.Fatalf("expected one failed page, got %d", rep.Failed())
	}
	revs := rep.Reviews()
	if len(revs) != 2 || *revs[0].Content != "a" || *revs[1].Content != "c" {
		t.Fatalf("unexpected reviews: %+v", revs)
	}
}

func TestFetch_AllPagesFailedYieldsNothing(t *testing.T) {
	boom := errors.New("down")
	src := &fakeSource{errs: map[int]error{1: boom, 2: boom}}
	rep := app.NewReviewFetcher(src).FetchPages(context.Background(), productURL, 2)
	if len(rep.Reviews()) != 0 || rep.Failed() != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if !errors.Is(rep.Pages[0].Err, boom) {
		t.Fatalf("page error should be kept, got %v", rep.Pages[0].Err)
	}
}

func TestFetch_MapsFieldsAndKeepsUnknownsNil(t *testing.T) {
	src := &fakeSource{pages: map[int][]map[string]any{
		1: {
			{
				"buyerName":     "Ali",
				"rating":        4.0,
				"reviewTime":    "12 Mar 2024",
				"reviewContent": "Great product",
				"likeCount":     3.0,
			},
			{
				"reviewContent": "",
				"rating":        "5",
				"likeCount":     "7",
			},
			{},
			{"buyerName": "", "reviewTime": " "},
		},
	}}
	got := app.NewReviewFetcher(src).Fetch(context.Background(), productURL, 1)
	if len(got) != 4 {
		t.Fatalf("expected 4 reviews, got %d", len(got))
	}

	full := got[0]
	if *full.Author != "Ali" || *full.Rating != 4 || *full.Date != "12 Mar 2024" || *full.Content != "Great product" || *full.Likes != 3 {
		t.Fatalf("unexpected mapping: %+v", full)
	}

	partial := got[1]
	if partial.Author != nil || partial.Date != nil {
		t.Fatalf("absent fields must stay nil: %+v", partial)
	}
	if partial.Content == nil || *partial.Content != "" {
		t.Fatalf("present empty content must be kept")
	}
	if *partial.Rating != 5 || *partial.Likes != 7 {
		t.Fatalf("string numbers not parsed: %+v", partial)
	}

	empty := got[2]
	if empty != (domain.Review{}) {
		t.Fatalf("expected all-unknown review, got %+v", empty)
	}

	blank := got[3]
	if blank.Author == nil || *blank.Author != "" || blank.Date == nil || *blank.Date != " " {
		t.Fatalf("present blank author/date must be kept: %+v", blank)
	}
}
