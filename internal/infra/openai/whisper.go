package openai

import (
	"bytes"
	"context"
	"strings"

	api "github.com/sashabaranov/go-openai"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra"
)

// Transcribe sends one utterance of encoded audio to the Whisper API and
// returns the transcript. Silent audio yields a no-speech
// TranscriptionError so the caller can re-prompt instead of failing.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var text string

	retryErr := infra.WithRetry(ctx, retryConfig(), func() error {
		resp, err := c.api.CreateTranscription(ctx, api.AudioRequest{
			Model:    api.Whisper1,
			FilePath: "utterance.wav",
			Reader:   bytes.NewReader(audio),
			Language: c.language,
		})
		if err != nil {
			return err
		}
		text = resp.Text
		return nil
	})
	if retryErr != nil {
		return "", &domain.TranscriptionError{Err: retryErr}
	}

	if strings.TrimSpace(text) == "" {
		return "", &domain.TranscriptionError{NoSpeech: true}
	}

	return text, nil
}
