package application

import "context"

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Speaker voices a response back to the user.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// Chime plays a short attention tone before the assistant starts listening.
type Chime interface {
	Play()
}

type NoopChime struct{}

func (NoopChime) Play() {}
