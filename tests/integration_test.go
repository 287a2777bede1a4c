package tests

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/application"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/audio"
)

type recordingSTT struct {
	transcriptions map[string]string
}

func (r *recordingSTT) Transcribe(_ context.Context, data []byte) (string, error) {
	if text, ok := r.transcriptions[string(data)]; ok {
		return text, nil
	}
	return "", &domain.TranscriptionError{NoSpeech: true}
}

type recordingTranslator struct {
	statements map[string]string
}

func (r *recordingTranslator) Translate(_ context.Context, transcript, _ string) (string, error) {
	if sql, ok := r.statements[transcript]; ok {
		return sql, nil
	}
	return "", &domain.TranslationError{Err: context.Canceled}
}

type recordingDB struct {
	mu       sync.Mutex
	executed []domain.Statement
	results  map[string]*domain.QueryResult
	done     chan struct{}
}

func (r *recordingDB) SchemaSummary(_ context.Context) (string, error) {
	return "orders: id (integer), customer (text)", nil
}
func (r *recordingDB) Name() string { return "shop" }
func (r *recordingDB) Close() error { return nil }

func (r *recordingDB) Execute(_ context.Context, stmt domain.Statement) (*domain.QueryResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = append(r.executed, stmt)
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
	if res, ok := r.results[stmt.SQL]; ok {
		return res, nil
	}
	return &domain.QueryResult{}, nil
}

func (r *recordingDB) FallbackSearch(_ context.Context, _, _ string) (*domain.QueryResult, error) {
	return &domain.QueryResult{}, nil
}
func (r *recordingDB) CreateDatabase(_ context.Context, _ string) error { return nil }
func (r *recordingDB) DropDatabase(_ context.Context, _ string) error   { return nil }
func (r *recordingDB) Switch(_ context.Context, _ string) error         { return nil }

type recordingSpeaker struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingSpeaker) Say(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
	return nil
}

func (r *recordingSpeaker) spoke(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// TestIntegration_FileSourcePipeline drops a recorded utterance into the
// file source's directory and follows it through the whole pipeline.
func TestIntegration_FileSourcePipeline(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "utterance.wav"), []byte("fake-wav"), 0644); err != nil {
		t.Fatal(err)
	}

	source := audio.NewFileSource(dir)
	stt := &recordingSTT{transcriptions: map[string]string{
		"fake-wav": "show me all orders from last week",
	}}
	translator := &recordingTranslator{statements: map[string]string{
		"show me all orders from last week": "SELECT * FROM orders WHERE order_date >= CURRENT_DATE - INTERVAL '7 days'",
	}}

	done := make(chan struct{})
	db := &recordingDB{
		done: done,
		results: map[string]*domain.QueryResult{
			"SELECT * FROM orders WHERE order_date >= CURRENT_DATE - INTERVAL '7 days'": {
				Columns: []string{"id", "customer"},
				Rows:    [][]string{{"1", "alice"}},
			},
		},
	}
	speaker := &recordingSpeaker{}

	assistant := application.NewAssistant(application.Deps{
		Audio:      source,
		STT:        stt,
		Translator: translator,
		DB:         db,
		Speaker:    speaker,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:        io.Discard,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = assistant.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for statement execution")
	}
	cancel()

	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.executed) != 1 {
		t.Fatalf("executed %d statements, want 1", len(db.executed))
	}
	if db.executed[0].Op != domain.OpSelect {
		t.Errorf("operation = %s, want select", db.executed[0].Op)
	}

	// Give the speaker a moment; Say runs right after Execute returns.
	deadline := time.Now().Add(2 * time.Second)
	for !speaker.spoke("Query executed successfully") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !speaker.spoke("Query executed successfully") {
		t.Errorf("success not spoken, got %v", speaker.lines)
	}
}
