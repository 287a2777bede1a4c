package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/openai"
)

func transcriptionServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 0 || req.Messages[0].Role != "system" {
			http.Error(w, "missing system prompt", http.StatusBadRequest)
			return
		}
		if !strings.Contains(req.Messages[0].Content, "PostgreSQL assistant") {
			http.Error(w, "unexpected system prompt", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestClientTranscribe(t *testing.T) {
	server := transcriptionServer(t, "show me all orders from last week")
	defer server.Close()

	client := openai.NewClientWithURL("test-key", "gpt-4o-mini", "en", server.URL+"/v1")

	text, err := client.Transcribe(context.Background(), []byte("wav-bytes"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "show me all orders from last week" {
		t.Errorf("text = %q", text)
	}
}

func TestClientTranscribeNoSpeech(t *testing.T) {
	server := transcriptionServer(t, "  ")
	defer server.Close()

	client := openai.NewClientWithURL("test-key", "gpt-4o-mini", "en", server.URL+"/v1")

	_, err := client.Transcribe(context.Background(), []byte("wav-bytes"))
	if err == nil {
		t.Fatal("expected error for blank transcript")
	}
	if !domain.IsNoSpeech(err) {
		t.Errorf("expected no-speech transcription error, got %v", err)
	}
}

func TestClientTranslate(t *testing.T) {
	server := completionServer(t, "SELECT * FROM orders WHERE order_date >= CURRENT_DATE - INTERVAL '7 days'")
	defer server.Close()

	client := openai.NewClientWithURL("test-key", "gpt-4o-mini", "en", server.URL+"/v1")

	sql, err := client.Translate(context.Background(), "show me all orders from last week", "orders: id (integer)")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.HasPrefix(sql, "SELECT") {
		t.Errorf("sql = %q", sql)
	}
}

func TestClientTranslateAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := openai.NewClientWithURL("test-key", "gpt-4o-mini", "en", server.URL+"/v1")

	_, err := client.Translate(context.Background(), "show orders", "")
	if err == nil {
		t.Fatal("expected error")
	}
	var te *domain.TranslationError
	if !errors.As(err, &te) {
		t.Errorf("expected TranslationError, got %T", err)
	}
}
