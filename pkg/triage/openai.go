package triage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/field"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You classify web form fields for an autofill engine.
For each field decide one category:
- "profile": standard personal data (name, email, phone, address, company).
- "claim": a question specific to this claim or purchase that only the user can answer.
- "file_upload": the field expects a document or image.
- "unfillable": captchas, hidden state, signatures, anything that must not be auto-filled.
Optionally suggest a semantic key for profile fields (e.g. "name.first", "email", "address.postal").
For claim fields put the question text in "promptForUser".
Answer with JSON only: {"classifications":[{"fieldId":"","category":"","suggestedKey":"","promptForUser":"","confidence":0.0}]}`

// fieldSummary is the compact per-field payload sent to the collaborator.
// Raw values never leave the process, only structure and labels.
type fieldSummary struct {
	ID          string   `json:"fieldId"`
	Type        string   `json:"type"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// OpenAI is the batched collaborator client: one chat completion per sweep.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ Client = (*OpenAI)(nil)

// OpenAIOption customises the collaborator client.
type OpenAIOption func(*OpenAI)

// WithModel overrides the completion model.
func WithModel(model string) OpenAIOption {
	return func(c *OpenAI) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger injects a logger; defaults to a nop logger.
func WithLogger(logger *zap.Logger) OpenAIOption {
	return func(c *OpenAI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClient injects a pre-built API client, for custom base URLs or tests.
func WithClient(client *openai.Client) OpenAIOption {
	return func(c *OpenAI) {
		if client != nil {
			c.client = client
		}
	}
}

// NewOpenAI builds the collaborator client from an API key.
func NewOpenAI(apiKey string, options ...OpenAIOption) *OpenAI {
	c := &OpenAI{
		client: openai.NewClient(apiKey),
		model:  defaultModel,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Classify sends the whole batch in one request and decodes the advisory
// verdicts. Any transport or parse failure surfaces as an error so the
// orchestrator can fall back to local heuristics.
func (c *OpenAI) Classify(ctx context.Context, fields []field.Descriptor) ([]field.Classification, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(summarize(fields))
	if err != nil {
		return nil, fmt.Errorf("triage: encode batch: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("triage: classify batch: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("triage: no choices in reply")
	}

	verdicts, err := parseClassifications(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("triage batch classified",
		zap.Int("fields", len(fields)), zap.Int("verdicts", len(verdicts)))
	return verdicts, nil
}

func summarize(fields []field.Descriptor) []fieldSummary {
	out := make([]fieldSummary, 0, len(fields))
	for _, d := range fields {
		s := fieldSummary{
			ID:          d.ID,
			Type:        string(d.Type),
			Label:       d.Label.Text,
			Description: d.Description,
			Placeholder: d.Placeholder,
			Required:    d.Required,
		}
		for _, opt := range d.Options {
			s.Options = append(s.Options, opt.Text)
		}
		out = append(out, s)
	}
	return out
}
