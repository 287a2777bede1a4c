package application

import "context"

// AudioSource yields one utterance of encoded audio at a time.
type AudioSource interface {
	Start(ctx context.Context) error
	Stop() error
	NextUtterance(ctx context.Context) ([]byte, error)
	Name() string
}
