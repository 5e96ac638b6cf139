package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are the assistant of a school parent committee ("ועד הורים") in Israel.
Parents ask in Hebrew or Russian; answer in the language of the question.
Keep answers short and practical. You help with organizing events, trips,
holiday gifts, class funds and similar committee matters. If a question is
unrelated to committee life, say so politely.`

type chatCompletionClient interface {
	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Service answers free-form questions from committee members.
type Service struct {
	client chatCompletionClient
	model  string
}

func NewService(client chatCompletionClient, model string) *Service {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Service{
		client: client,
		model:  model,
	}
}

func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", errors.New("question empty")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: question,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
