// Package sentiment holds the sentiment classifier backends.
package sentiment

import (
	"fmt"
	"strings"

	"daraz_reviews/internal/domain"
)

// New picks a backend by name: "openai" or "lexicon". An empty name means
// openai when a key is set, lexicon otherwise.
func New(backend, apiKey, model, baseURL string) (domain.SentimentClassifier, error) {
	switch strings.ToLower(backend) {
	case "":
		if apiKey != "" {
			return NewOpenAI(apiKey, model, baseURL)
		}
		return NewLexicon(), nil
	case "openai":
		return NewOpenAI(apiKey, model, baseURL)
	case "lexicon":
		return NewLexicon(), nil
	}
	return nil, fmt.Errorf("unknown sentiment backend %q", backend)
}
