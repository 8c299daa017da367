package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"daraz_reviews/internal/domain"
)

const (
	defaultModel = "gpt-4o-mini"
	maxTokens    = 32
	// CallTimeout bounds one completion request.
	CallTimeout = 30 * time.Second
)

const systemPrompt = `You label the sentiment of a customer product review.
Reply with a JSON object {"label": "POSITIVE"|"NEGATIVE"|"NEUTRAL", "confidence": number between 0 and 1}.
Reply with nothing else.`

// OpenAI classifies with a chat completion in JSON mode.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns a classifier. baseURL may be empty to use the public API.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: CallTimeout}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

type labelReply struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (o *OpenAI) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   maxTokens,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return domain.Sentiment{}, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Sentiment{}, fmt.Errorf("openai: empty response")
	}

	var r labelReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Choices[0].Message.Content)), &r); err != nil {
		return domain.Sentiment{}, fmt.Errorf("openai: decode reply: %w", err)
	}
	label, err := domain.ParseSentimentLabel(r.Label)
	if err != nil {
		return domain.Sentiment{}, err
	}
	return domain.Sentiment{Label: label, Confidence: r.Confidence}, nil
}
