package protocols

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const extractSystemPrompt = `You extract action items from parent committee meeting protocols.
The protocol text may be in Hebrew, Russian, or a mix of both.
Respond with a JSON array only, no prose. Each element:
{"title": "...", "assignee": "...", "due_hint": "..."}
Keep titles in the protocol's language. Use an empty string for unknown fields.`

var ErrNoActionItems = errors.New("no action items found")

type chatCompletionClient interface {
	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Extractor turns a protocol body into structured action items
// via a chat completion call.
type Extractor struct {
	client chatCompletionClient
	model  string
}

func NewExtractor(client chatCompletionClient, model string) *Extractor {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Extractor{
		client: client,
		model:  model,
	}
}

func (e *Extractor) Extract(ctx context.Context, body string) ([]ActionItem, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("protocol body empty")
	}

	resp, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: extractSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: body,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion: no choices")
	}

	items, err := parseActionItems(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoActionItems
	}

	return items, nil
}

// parseActionItems tolerates a markdown code fence around the JSON,
// which some models add despite the prompt.
func parseActionItems(content string) ([]ActionItem, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var items []ActionItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("unmarshal action items: %w", err)
	}

	return items, nil
}
