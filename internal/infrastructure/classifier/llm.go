package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/metrics"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const backendOpenAI = "openai"

// ChatCompletionCreator is the subset of *openai.Client the LLM classifier uses.
type ChatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LabelSource yields the labels an answer may use.
type LabelSource interface {
	Labels() []string
}

// LLMClassifier scores texts with a chat completion model, restricted to the
// label set of the local model.
type LLMClassifier struct {
	client ChatCompletionCreator
	model  string
	labels LabelSource
}

var _ ports.Classifier = (*LLMClassifier)(nil)

func NewLLMClassifier(client ChatCompletionCreator, model string, labels LabelSource) *LLMClassifier {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &LLMClassifier{client: client, model: model, labels: labels}
}

// NewOpenAIClassifier builds an LLMClassifier over the public OpenAI API.
func NewOpenAIClassifier(apiKey, model string, labels LabelSource) (*LLMClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai classifier: api key not provided")
	}
	return NewLLMClassifier(openai.NewClient(apiKey), model, labels), nil
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) (ports.Classification, error) {
	labels := c.labels.Labels()
	if len(labels) == 0 {
		return ports.Classification{}, ErrModelNotLoaded
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          c.model,
		Temperature:    0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(labels)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	metrics.ClassificationDuration.WithLabelValues(backendOpenAI).Observe(time.Since(start).Seconds())
	if err != nil {
		return ports.Classification{}, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.Classification{}, fmt.Errorf("no choices returned from OpenAI")
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ports.Classification{}, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}

	label, ok := matchLabel(parsed.Label, labels)
	if !ok {
		return ports.Classification{}, fmt.Errorf("LLM answered unknown label %q", parsed.Label)
	}
	score := parsed.Confidence
	if score <= 0 || score > 1 {
		score = 1
	}
	return ports.Classification{Label: label, Score: score, ModelVersion: backendOpenAI + ":" + c.model}, nil
}

func systemPrompt(labels []string) string {
	return fmt.Sprintf(
		"Classify the sentiment of the user's text. Answer only with a JSON object "+
			`{"label": string, "confidence": number between 0 and 1}. `+
			"The label must be exactly one of: %s.", strings.Join(labels, ", "))
}

func matchLabel(answer string, labels []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for _, l := range labels {
		if strings.EqualFold(l, answer) {
			return l, true
		}
	}
	return "", false
}
