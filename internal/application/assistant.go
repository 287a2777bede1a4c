package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

var (
	errExit      = errors.New("exit requested")
	errNoCommand = errors.New("no command captured")
)

// Deps wires the assistant's collaborators.
type Deps struct {
	Audio      AudioSource
	STT        Transcriber
	Translator Translator
	DB         Database
	Speaker    Speaker
	Chime      Chime
	Journal    Journal
	Logger     *slog.Logger

	// Out receives rendered result tables. Defaults to os.Stdout.
	Out io.Writer

	// MaxAttempts bounds how often a garbled utterance is re-prompted.
	MaxAttempts int
}

// Assistant runs the capture → transcribe → translate → execute → respond
// pipeline, one utterance at a time.
type Assistant struct {
	audio       AudioSource
	stt         Transcriber
	translator  Translator
	db          Database
	speaker     Speaker
	chime       Chime
	journal     Journal
	logger      *slog.Logger
	out         io.Writer
	maxAttempts int

	schema string
	sess   session
}

func NewAssistant(d Deps) *Assistant {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.MaxAttempts <= 0 {
		d.MaxAttempts = 3
	}
	if d.Chime == nil {
		d.Chime = NoopChime{}
	}
	if d.Journal == nil {
		d.Journal = NoopJournal{}
	}
	return &Assistant{
		audio:       d.Audio,
		stt:         d.STT,
		translator:  d.Translator,
		db:          d.DB,
		speaker:     d.Speaker,
		chime:       d.Chime,
		journal:     d.Journal,
		logger:      d.Logger,
		out:         d.Out,
		maxAttempts: d.MaxAttempts,
	}
}

func (a *Assistant) Run(ctx context.Context) error {
	schema, err := a.db.SchemaSummary(ctx)
	if err != nil {
		a.logger.Warn("schema introspection failed", "error", err)
	}
	a.schema = schema

	if err := a.audio.Start(ctx); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer a.audio.Stop()

	a.logger.Info("assistant ready",
		"audio_source", a.audio.Name(),
		"database", a.db.Name(),
	)
	a.say(ctx, "Voice SQL assistant is now active.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			err := a.processUtterance(ctx)
			switch {
			case errors.Is(err, errExit):
				a.say(ctx, "Goodbye!")
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case err != nil:
				a.logger.Error("processing utterance", "error", err)
			}
		}
	}
}

func (a *Assistant) processUtterance(ctx context.Context) error {
	transcript, err := a.listen(ctx)
	if errors.Is(err, errNoCommand) {
		a.say(ctx, "Maximum retries reached.")
		return errExit
	}
	if err != nil {
		return err
	}

	if transcript == "" || strings.Contains(transcript, "exit") {
		return errExit
	}

	transcript = a.sess.resolvePronouns(transcript)

	if strings.Contains(transcript, "use database") {
		a.switchDatabase(ctx, transcript)
		return nil
	}

	sqlText, err := a.translator.Translate(ctx, transcript, a.schema)
	if err != nil {
		a.logger.Error("translating", "error", err)
		a.say(ctx, "I could not reach the language model. Please try again.")
		return nil
	}

	sqlText = domain.CleanModelOutput(sqlText)
	if sqlText == "" || domain.HasPlaceholders(sqlText) {
		a.say(ctx, "Your request seems incomplete. Please provide all required details.")
		return nil
	}

	stmt := domain.NewStatement(sqlText)
	a.logger.Info("generated statement", "sql", stmt.SQL, "operation", stmt.Op)
	fmt.Fprintf(a.out, "\nGenerated SQL:\n%s\n", stmt.SQL)

	if stmt.Op.Destructive() && !a.confirm(ctx) {
		a.say(ctx, "Cancelled.")
		return nil
	}

	switch stmt.Op {
	case domain.OpCreateDatabase:
		a.adminDatabase(ctx, transcript, stmt, true)
		return nil
	case domain.OpDropDatabase:
		a.adminDatabase(ctx, transcript, stmt, false)
		return nil
	}

	return a.execute(ctx, transcript, stmt)
}

// listen captures one utterance and transcribes it, re-prompting on silent
// or unintelligible audio up to maxAttempts times.
func (a *Assistant) listen(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		a.chime.Play()
		a.logger.Info("listening", "attempt", attempt)

		audio, err := a.audio.NextUtterance(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", err
			}
			return "", &domain.DeviceError{Err: err}
		}

		if len(audio) == 0 {
			a.say(ctx, "Sorry, I didn't catch that. Please try again.")
			continue
		}

		text, err := a.stt.Transcribe(ctx, audio)
		if err != nil {
			if domain.IsNoSpeech(err) {
				a.say(ctx, "Sorry, I didn't catch that. Please try again.")
				continue
			}
			return "", err
		}

		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			a.say(ctx, "Sorry, I didn't catch that. Please try again.")
			continue
		}

		a.logger.Info("heard", "text", text)
		return text, nil
	}
	return "", errNoCommand
}

// confirm asks for a spoken "yes" before a destructive statement runs.
func (a *Assistant) confirm(ctx context.Context) bool {
	a.say(ctx, "This action will modify or delete data. Say yes to confirm.")
	reply, err := a.listen(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(reply, "yes")
}

func (a *Assistant) switchDatabase(ctx context.Context, transcript string) {
	parts := strings.SplitN(transcript, "use database", 2)
	name := strings.ReplaceAll(strings.TrimSpace(parts[1]), " ", "_")
	if name == "" {
		a.say(ctx, "I could not tell which database you meant.")
		return
	}

	if err := a.db.Switch(ctx, name); err != nil {
		a.logger.Error("switching database", "database", name, "error", err)
		a.say(ctx, fmt.Sprintf("Could not connect to database %s.", name))
		return
	}

	schema, err := a.db.SchemaSummary(ctx)
	if err != nil {
		a.logger.Warn("schema introspection failed", "error", err)
	}
	a.schema = schema
	a.sess.reset()

	a.say(ctx, fmt.Sprintf("Switched to database %s.", name))
}

func (a *Assistant) adminDatabase(ctx context.Context, transcript string, stmt domain.Statement, create bool) {
	name := domain.DatabaseName(stmt.SQL)
	if name == "" {
		a.say(ctx, "I could not tell which database you meant.")
		return
	}

	var (
		err     error
		outcome string
	)
	if create {
		err = a.db.CreateDatabase(ctx, name)
		outcome = fmt.Sprintf("Database %s created.", name)
	} else {
		err = a.db.DropDatabase(ctx, name)
		outcome = fmt.Sprintf("Database %s dropped.", name)
	}

	if err != nil {
		a.logger.Error("database admin", "database", name, "error", err)
		outcome = fmt.Sprintf("Error: %v", err)
		a.say(ctx, fmt.Sprintf("The database operation on %s failed.", name))
	} else {
		a.say(ctx, outcome)
	}

	a.record(ctx, transcript, stmt.SQL, outcome)
}

func (a *Assistant) execute(ctx context.Context, transcript string, stmt domain.Statement) error {
	if stmt.Op == domain.OpSelect {
		stmt.SQL = domain.LowercaseWhere(stmt.SQL)
	}

	result, err := a.db.Execute(ctx, stmt)
	if err != nil {
		healed := domain.SelfHeal(stmt.SQL)
		if healed != stmt.SQL {
			a.say(ctx, "Trying an auto-healed version of the query.")
			a.logger.Info("retrying healed statement", "sql", healed)
			stmt.SQL = healed
			result, err = a.db.Execute(ctx, stmt)
		}
	}
	if err != nil {
		a.record(ctx, transcript, stmt.SQL, fmt.Sprintf("Error: %v", err))
		a.say(ctx, "The query failed to execute.")
		return fmt.Errorf("executing: %w", err)
	}

	if stmt.Op != domain.OpSelect {
		outcome := fmt.Sprintf("%s executed successfully.", capitalize(string(stmt.Op)))
		a.record(ctx, transcript, stmt.SQL, outcome)
		a.say(ctx, outcome)
		return nil
	}

	if result.Empty() {
		a.record(ctx, transcript, stmt.SQL, "No results found.")
		a.fallback(ctx, transcript, stmt)
		return nil
	}

	fmt.Fprintf(a.out, "\nResult:\n%s", result.Render())
	a.sess.remember(stmt)

	outcome := "Query executed successfully. Data displayed in table format."
	a.record(ctx, transcript, stmt.SQL, outcome)
	a.say(ctx, outcome)
	return nil
}

// fallback runs the secondary ILIKE search when a SELECT came back empty.
func (a *Assistant) fallback(ctx context.Context, transcript string, stmt domain.Statement) {
	table := domain.TableName(stmt.SQL)
	if table == "" {
		table = a.sess.lastTable
	}
	if table == "" {
		a.say(ctx, "No previous table context available for fallback search.")
		return
	}

	result, err := a.db.FallbackSearch(ctx, table, transcript)
	switch {
	case errors.Is(err, domain.ErrTableNotFound):
		a.say(ctx, fmt.Sprintf("Table %s was not found in the database.", table))
	case errors.Is(err, domain.ErrNoTextColumns):
		a.say(ctx, fmt.Sprintf("No text columns found to search in %s.", table))
	case err != nil:
		a.logger.Error("fallback search", "table", table, "error", err)
		a.say(ctx, "The fallback search failed.")
	case result.Empty():
		a.say(ctx, fmt.Sprintf("No similar data found in %s.", table))
	default:
		fmt.Fprintf(a.out, "\nFallback result:\n%s", result.Render())
		a.say(ctx, fmt.Sprintf("Showing similar results from %s.", table))
	}
}

func (a *Assistant) record(ctx context.Context, transcript, sql, outcome string) {
	if err := a.journal.Record(ctx, transcript, sql, outcome); err != nil {
		a.logger.Error("journaling", "error", err)
	}
}

func (a *Assistant) say(ctx context.Context, text string) {
	a.logger.Info("assistant", "say", text)
	if err := a.speaker.Say(ctx, text); err != nil {
		a.logger.Error("speaking", "error", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
