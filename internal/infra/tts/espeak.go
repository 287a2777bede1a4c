package tts

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// EspeakSpeaker voices responses through the espeak-ng binary.
type EspeakSpeaker struct {
	voice string
	rate  int
}

func NewEspeakSpeaker(voice string, rate int) *EspeakSpeaker {
	if rate <= 0 {
		rate = 150
	}
	return &EspeakSpeaker{voice: voice, rate: rate}
}

func (s *EspeakSpeaker) Say(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	args := []string{"-s", strconv.Itoa(s.rate)}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng: %w", err)
	}
	return nil
}
