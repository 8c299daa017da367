package app

import (
	"strings"

	"daraz_reviews/internal/domain"
)

// ClassifyIssue returns the first category, in taxonomy order, with a keyword
// contained in content. Plain substring match, case-insensitive.
func ClassifyIssue(content string) (domain.IssueCategory, bool) {
	low := strings.ToLower(content)
	for _, cat := range domain.IssueKeywords {
		for _, kw := range cat.Keywords {
			if strings.Contains(low, kw) {
				return cat.Category, true
			}
		}
	}
	return "", false
}
