package domain

// Review is one customer review as provided by the marketplace.
// nil fields are unknown; they are never defaulted.
type Review struct {
	Author  *string  `json:"author"`
	Rating  *float64 `json:"rating"`
	Date    *string  `json:"date"`
	Content *string  `json:"content"`
	Likes   *int64   `json:"likes"`
}

// PageResult is the outcome of fetching one page. Err != nil means the page
// was skipped; an empty Reviews with nil Err is the end-of-reviews signal.
type PageResult struct {
	Page    int
	Reviews []Review
	Err     error
}

func (p PageResult) Empty() bool { return p.Err == nil && len(p.Reviews) == 0 }

// FetchReport is everything a fetch produced, page by page.
type FetchReport struct {
	ProductID  string
	Unresolved bool // URL carried no product id
	Pages      []PageResult
}

// Err reports why a fetch could not start. A report with only empty or
// failed pages still has a nil Err.
func (f FetchReport) Err() error {
	if f.Unresolved {
		return ErrUnresolvableProduct
	}
	return nil
}

// Reviews flattens successful pages in page order.
func (f FetchReport) Reviews() []Review {
	var out []Review
	for _, p := range f.Pages {
		if p.Err == nil {
			out = append(out, p.Reviews...)
		}
	}
	return out
}

// Failed counts skipped pages.
func (f FetchReport) Failed() int {
	n := 0
	for _, p := range f.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}
