package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIProvider implements TextGenerator with the OpenAI chat completions API.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	sampling Sampling
}

func NewOpenAIProvider(apiKey, model string, s Sampling) *OpenAIProvider {
	return newOpenAIProvider(openai.DefaultConfig(apiKey), model, s)
}

func newOpenAIProvider(cfg openai.ClientConfig, model string, s Sampling) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		sampling: s,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.sampling.Temperature,
		TopP:        p.sampling.TopP,
		MaxTokens:   int(p.sampling.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
