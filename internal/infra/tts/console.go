package tts

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleSpeaker prints responses instead of voicing them, for machines
// without a speech engine.
type ConsoleSpeaker struct {
	out io.Writer
}

func NewConsoleSpeaker(out io.Writer) *ConsoleSpeaker {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleSpeaker{out: out}
}

func (s *ConsoleSpeaker) Say(_ context.Context, text string) error {
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.out, "Assistant: %s\n", text)
	return err
}
