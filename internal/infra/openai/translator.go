package openai

import (
	"context"
	"errors"
	"strings"

	api "github.com/sashabaranov/go-openai"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra"
)

const systemPrompt = `You are a PostgreSQL assistant. Convert natural language to raw SQL queries. Do not explain. Only return SQL. Use case-insensitive filters with LOWER().`

// Translate asks the completion model for a SQL statement matching the
// transcript, with the live schema summary embedded in the system prompt.
func (c *Client) Translate(ctx context.Context, transcript, schema string) (string, error) {
	prompt := systemPrompt
	if schema != "" {
		prompt += "\nSchema:\n" + schema
	}

	var out string
	retryErr := infra.WithRetry(ctx, retryConfig(), func() error {
		resp, err := c.api.CreateChatCompletion(ctx, api.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0.1,
			Messages: []api.ChatCompletionMessage{
				{Role: api.ChatMessageRoleSystem, Content: prompt},
				{Role: api.ChatMessageRoleUser, Content: transcript},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("empty completion response")
		}
		out = resp.Choices[0].Message.Content
		return nil
	})
	if retryErr != nil {
		return "", &domain.TranslationError{Err: retryErr}
	}

	return strings.TrimSpace(out), nil
}
