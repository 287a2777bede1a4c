package journal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileJournal appends one human-readable entry per executed utterance.
type FileJournal struct {
	path string
	mu   sync.Mutex
}

func NewFileJournal(path string) *FileJournal {
	return &FileJournal{path: path}
}

func (j *FileJournal) Record(_ context.Context, transcript, sql, outcome string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "\n[%s] %s\nCommand: %s\nSQL: %s\nResult: %s\n",
		time.Now().Format(time.RFC3339), uuid.NewString(), transcript, sql, outcome)
	if err != nil {
		return fmt.Errorf("writing journal entry: %w", err)
	}
	return nil
}
