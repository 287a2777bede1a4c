//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gordonklaus/portaudio"
)

// MicrophoneSource records utterances from the default input device.
// Recording starts with speech and ends after a trailing-silence window or
// when the utterance cap is reached.
type MicrophoneSource struct {
	sampleRate int
	maxSeconds int
	logger     *slog.Logger

	stream *portaudio.Stream
	frame  []int16
}

const (
	frameMillis       = 20
	silenceThreshRMS  = 500.0 // int16 scale
	trailingSilenceMS = 600
)

func NewMicrophoneSource(sampleRate, maxSeconds int, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate: sampleRate,
		maxSeconds: maxSeconds,
		logger:     logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	frameSize := m.sampleRate * frameMillis / 1000
	m.frame = make([]int16, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), frameSize, m.frame)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	m.logger.Info("microphone started", "sample_rate", m.sampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
	}
	portaudio.Terminate()
	return nil
}

func (m *MicrophoneSource) NextUtterance(ctx context.Context) ([]byte, error) {
	samples := make([]int16, 0, m.sampleRate*3)

	var (
		speaking      bool
		silenceFrames int
	)
	maxFrames := m.maxSeconds * 1000 / frameMillis
	maxSilenceFrames := trailingSilenceMS / frameMillis

	for i := 0; i < maxFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		if frameRMS(m.frame) > silenceThreshRMS {
			speaking = true
			silenceFrames = 0
			samples = append(samples, m.frame...)
			continue
		}

		if speaking {
			silenceFrames++
			if silenceFrames >= maxSilenceFrames {
				break
			}
			samples = append(samples, m.frame...)
		}
	}

	if len(samples) == 0 {
		return nil, nil
	}

	return encodeWAV(samples, m.sampleRate), nil
}

func frameRMS(frame []int16) float64 {
	var sum float64
	for _, s := range frame {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(frame)))
}
