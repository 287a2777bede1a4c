package domain

import (
	"errors"
	"fmt"
)

// DeviceError wraps a failure to capture audio from the input device.
type DeviceError struct {
	Err error
}

func (e *DeviceError) Error() string { return fmt.Sprintf("audio device: %v", e.Err) }
func (e *DeviceError) Unwrap() error { return e.Err }

// TranscriptionError wraps a speech-to-text failure. NoSpeech marks the
// audio as silent or unintelligible rather than the service failing, which
// is what decides whether the assistant re-prompts.
type TranscriptionError struct {
	NoSpeech bool
	Err      error
}

func (e *TranscriptionError) Error() string {
	if e.NoSpeech {
		return "transcription: no intelligible speech"
	}
	return fmt.Sprintf("transcription: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// IsNoSpeech reports whether err is a TranscriptionError for silent or
// unintelligible audio.
func IsNoSpeech(err error) bool {
	var te *TranscriptionError
	return errors.As(err, &te) && te.NoSpeech
}

// TranslationError wraps a failure of the language-model call that turns a
// transcript into SQL.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string { return fmt.Sprintf("query translation: %v", e.Err) }
func (e *TranslationError) Unwrap() error { return e.Err }

// DatabaseError wraps a connection or execution failure against PostgreSQL.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string { return fmt.Sprintf("database: %v", e.Err) }
func (e *DatabaseError) Unwrap() error { return e.Err }

var (
	// ErrTableNotFound is returned by the fallback search when the context
	// table no longer exists in the current database.
	ErrTableNotFound = errors.New("table not found")

	// ErrNoTextColumns is returned by the fallback search when the context
	// table has no text columns to match against.
	ErrNoTextColumns = errors.New("no text columns to search")
)
