package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gmail-ai-assistant/internal/logging"
	"gmail-ai-assistant/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// Service is the text-generation surface the pipeline depends on. All
// operations degrade to an empty result on failure; callers treat "" as
// "no result".
type Service interface {
	Categorize(ctx context.Context, subject, body, sender string) CategoryResult
	GenerateReply(ctx context.Context, subject, body string, category models.Category) string
	GenerateDigest(ctx context.Context, stats models.Stats) string
	GenerateDraft(ctx context.Context, subject, message string, category models.Category) string
}

// Client generates text through an OpenAI-compatible completion endpoint,
// such as the /v1 API an Ollama server exposes.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a generation client for the given endpoint host and model
func NewClient(host, model string) *Client {
	base := strings.TrimRight(host, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}

	cfg := openai.DefaultConfig("")
	cfg.BaseURL = base

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Categorize classifies an email into one of the three urgency buckets with a
// confidence score and a short rationale. Unparseable model output falls back
// to the safe defaults documented on ParseCategoryResponse.
func (c *Client) Categorize(ctx context.Context, subject, body, sender string) CategoryResult {
	prompt := fmt.Sprintf(`You are an expert email assistant. Analyze the following email and:
1. Categorize it as one of: URGENT, IMPORTANT, or LOW_PRIORITY.
2. Give a confidence score (0-100) for your choice.
3. Briefly explain your reasoning.

Criteria:
- URGENT: Requires immediate action, has severe consequences if delayed, or uses urgent language.
- IMPORTANT: Needs action but not immediately, or is from a key stakeholder, but not an emergency.
- LOW_PRIORITY: Can be handled later, is informational, or not time-sensitive.

Email Subject: %s
Email Body: %s
Sender: %s

Respond in this format:
Category: <category>
Confidence: <number>
Rationale: <short explanation>`, subject, body, sender)

	return ParseCategoryResponse(c.complete(ctx, prompt))
}

// GenerateReply produces a professional draft reply for the email
func (c *Client) GenerateReply(ctx context.Context, subject, body string, category models.Category) string {
	prompt := fmt.Sprintf(`Generate a professional email reply for:
Subject: %s
Category: %s

Original message:
%s

Format the response as a clean email with:
- Subject line
- Professional greeting
- Clear body
- Professional signature

Do not include any thinking process or <think> tags.`, subject, category, body)

	return c.complete(ctx, prompt)
}

// GenerateDigest produces a formatted summary report from aggregate
// statistics.
func (c *Client) GenerateDigest(ctx context.Context, stats models.Stats) string {
	encoded, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		logging.Log.WithError(err).Error("Error encoding stats for digest")
		return ""
	}

	prompt := fmt.Sprintf(`Generate a daily email digest report based on these statistics:
%s

Include:
- Summary of emails received
- Categorization breakdown
- Key action items
- Reply status

Format as a clear, concise report:`, encoded)

	return c.complete(ctx, prompt)
}

// GenerateDraft produces a raw email draft with no explanatory wrapper
func (c *Client) GenerateDraft(ctx context.Context, subject, message string, category models.Category) string {
	prompt := fmt.Sprintf(`Write ONLY the email draft, no explanations or reasoning:

Subject: %s
Message: %s
Category: %s

Output format:
Dear [recipient's name],

[body]

Best regards,
[your name]`, subject, message, category)

	return c.complete(ctx, prompt)
}

// complete sends one non-streamed prompt and returns the trimmed completion.
// Any transport or server failure is logged and degraded to an empty string;
// "" therefore means both "no content" and "call failed", a conflation the
// callers are written around.
func (c *Client) complete(ctx context.Context, prompt string) string {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logging.Log.WithError(err).Error("Error generating response")
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}

	text := resp.Choices[0].Message.Content

	// Some backends echo the prompt ahead of the completion
	if idx := strings.LastIndex(text, prompt); idx >= 0 {
		text = text[idx+len(prompt):]
	}

	return strings.TrimSpace(text)
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
