package app_test

import (
	"testing"

	"daraz_reviews/internal/app"
	"daraz_reviews/internal/domain"
)

func TestClassifyIssue(t *testing.T) {
	cases := []struct {
		content string
		want    domain.IssueCategory
		ok      bool
	}{
		{"Very late delivery, box crushed", domain.IssueDelivery, true},
		{"POOR QUALITY", domain.IssueQuality, true},
		// quality is declared before price
		{"expensive and cheap material", domain.IssueQuality, true},
		{"Not as per description", domain.IssueDescription, true},
		{"Customer care ignored me", domain.IssueService, true},
		{"overpriced", domain.IssuePrice, true},
		{"I did not like it", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := app.ClassifyIssue(c.content)
		if got != c.want || ok != c.ok {
			t.Fatalf("%q: got (%q,%v) want (%q,%v)", c.content, got, ok, c.want, c.ok)
		}
	}
}

func TestClassifyIssue_SubstringNotWordMatch(t *testing.T) {
	// "slowly" contains "slow"; no stemming or word boundaries
	got, ok := app.ClassifyIssue("it arrived slowly")
	if !ok || got != domain.IssueDelivery {
		t.Fatalf("got (%q,%v)", got, ok)
	}
}
