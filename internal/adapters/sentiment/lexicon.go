package sentiment

import (
	"context"
	"strings"
	"unicode"

	"daraz_reviews/internal/domain"
)

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "perfect", "love", "loved",
	"nice", "best", "happy", "satisfied", "recommended", "recommend", "fast",
	"genuine", "original", "beautiful", "worth", "fine", "superb", "thanks",
}

var negativeWords = []string{
	"bad", "poor", "worst", "terrible", "awful", "broken", "defective", "fake",
	"late", "slow", "cheap", "damaged", "wrong", "disappointed", "waste",
	"useless", "overpriced", "expensive", "refund", "return", "fraud",
}

// Lexicon is a word-count scorer used when no model backend is configured.
type Lexicon struct {
	pos, neg map[string]struct{}
}

func NewLexicon() *Lexicon {
	l := &Lexicon{pos: map[string]struct{}{}, neg: map[string]struct{}{}}
	for _, w := range positiveWords {
		l.pos[w] = struct{}{}
	}
	for _, w := range negativeWords {
		l.neg[w] = struct{}{}
	}
	return l
}

func (l *Lexicon) Classify(_ context.Context, text string) (domain.Sentiment, error) {
	var p, n int
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, w := range words {
		if _, ok := l.pos[w]; ok {
			p++
		}
		if _, ok := l.neg[w]; ok {
			n++
		}
	}
	switch {
	case p > n:
		return domain.Sentiment{Label: domain.Positive, Confidence: float64(p-n) / float64(p+n)}, nil
	case n > p:
		return domain.Sentiment{Label: domain.Negative, Confidence: float64(n-p) / float64(p+n)}, nil
	}
	return domain.Sentiment{Label: domain.Neutral}, nil
}
