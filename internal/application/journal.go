package application

import "context"

// Journal records every executed utterance for later inspection.
type Journal interface {
	Record(ctx context.Context, transcript, sql, outcome string) error
}

type NoopJournal struct{}

func (NoopJournal) Record(_ context.Context, _, _, _ string) error { return nil }
