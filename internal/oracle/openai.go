package oracle

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// promptContentLimit caps how much note content is embedded in the scoring
// prompt; notes are assumed small but the cap keeps token usage bounded.
const promptContentLimit = 2000

// Client is the OpenAI-backed Oracle implementation.
type Client struct {
	api   openai.Client
	model string
}

// NewClient builds a Client for the given API key and model. An empty
// model selects DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Score asks the model for a relevance assessment of one note and parses
// the structured response. Rate limits surface as ErrRateLimited; every
// other failure (including unparseable output) is an *UpstreamError.
func (c *Client) Score(ctx context.Context, notePath, content string) (ScoreResult, error) {
	text, err := c.complete(ctx, scorePrompt(notePath, content))
	if err != nil {
		return ScoreResult{}, classify("score", err)
	}
	result, err := ParseScorePayload(text)
	if err != nil {
		return ScoreResult{}, &UpstreamError{Op: "score", Err: err}
	}
	return result, nil
}

// Enhance asks the model for an expanded version of the note. The output
// is raw candidate content; callers must run it through the enhancement
// validator before persisting anything.
func (c *Client) Enhance(ctx context.Context, notePath, content string) (string, error) {
	text, err := c.complete(ctx, enhancePrompt(notePath, content))
	if err != nil {
		return "", classify("enhance", err)
	}
	return StripCodeFences(text), nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps transport errors into the oracle error taxonomy.
func classify(op string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return fmt.Errorf("%s: %w", op, ErrRateLimited)
	}
	return &UpstreamError{Op: op, Err: err}
}

func scorePrompt(notePath, content string) string {
	truncated := content
	if len(truncated) > promptContentLimit {
		truncated = truncated[:promptContentLimit] + "..."
	}

	var b strings.Builder
	b.WriteString("Analyze this note and provide a relevance assessment.\n\n")
	fmt.Fprintf(&b, "File: %s\nPath: %s\n\nContent:\n%s\n\n", path.Base(notePath), notePath, truncated)
	b.WriteString(`Provide:
1. A relevance score from 0-10 where:
   - 0-2: Outdated, redundant, or no value (should delete)
   - 3-4: Low value, probably safe to delete
   - 5-6: Moderate value, review carefully
   - 7-8: High value, likely keep
   - 9-10: Essential content, definitely keep
2. Brief reasoning for the score
3. Recommendation: "keep" or "delete"

Scoring bonuses:
- Contains API keys, passwords, or credentials: +2-3 points
- Contains [[wiki-style links]] to other notes: +1-2 points
- Has many outgoing links (hub/index note): +2-3 points
- Template files (reusable structure): +1-2 points
- Personal/autobiographical content: +1-2 points

Scoring penalties:
- Easily recreated from Google/Wikipedia: -2-3 points

Respond in JSON format:
{"score": <number>, "reasoning": "<brief explanation>", "recommendation": "<keep|delete>"}
`)
	return b.String()
}

func enhancePrompt(notePath, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Improve this note by adding useful related content.\n\nFile: %s\n\n", path.Base(notePath))
	b.WriteString(`Rules, all mandatory:
- Every existing line must appear verbatim in your output, in its original order.
- Only add content; never rewrite, summarize, reorder, or remove anything.
- Additions may include context, examples, links, or structure.
- Respond with the complete new note content only, no commentary and no code fences.

Current content:
`)
	b.WriteString(content)
	return b.String()
}
