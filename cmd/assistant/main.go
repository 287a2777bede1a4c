package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	cli "github.com/spf13/pflag"

	"github.com/dhavalgirsawale/SQL-Assistant/config"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/application"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/audio"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/journal"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/notify"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/openai"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/postgres"
	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra/tts"
)

func main() {
	configPath := cli.StringP("config", "c", "config.yaml", "path to config file")
	envFile := cli.StringP("env", "e", ".env", "env file path")
	cli.Parse()

	godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	if cfg.OpenAI.APIKey == "" {
		logger.Error("openai.api_key not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	db, err := postgres.Connect(postgres.Config{
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		Name:          cfg.Database.Name,
		SSLMode:       cfg.Database.SSLMode,
		MaintenanceDB: cfg.Database.MaintenanceDB,
	}, logger)
	if err != nil {
		logger.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client := openai.NewClientWithURL(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Language, cfg.OpenAI.BaseURL)

	assistant := application.NewAssistant(application.Deps{
		Audio:       createAudioSource(cfg.Audio, logger),
		STT:         client,
		Translator:  client,
		DB:          db,
		Speaker:     createSpeaker(cfg.TTS),
		Chime:       createChime(cfg.Audio),
		Journal:     journal.NewFileJournal(cfg.Journal.Path),
		Logger:      logger,
		MaxAttempts: cfg.Audio.MaxAttempts,
	})

	logger.Info("starting voice SQL assistant",
		"audio_source", cfg.Audio.Source,
		"model", cfg.OpenAI.Model,
		"database", cfg.Database.Name,
	)

	if err := assistant.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func createAudioSource(cfg config.AudioConfig, logger *slog.Logger) application.AudioSource {
	switch cfg.Source {
	case "file":
		return audio.NewFileSource(cfg.FileDir)
	case "microphone":
		return audio.NewMicrophoneSource(cfg.SampleRate, cfg.MaxSeconds, logger)
	default:
		logger.Warn("unknown audio source, using microphone", "source", cfg.Source)
		return audio.NewMicrophoneSource(cfg.SampleRate, cfg.MaxSeconds, logger)
	}
}

func createSpeaker(cfg config.TTSConfig) application.Speaker {
	if cfg.Engine == "console" {
		return tts.NewConsoleSpeaker(os.Stdout)
	}
	return tts.NewEspeakSpeaker(cfg.Voice, cfg.Rate)
}

func createChime(cfg config.AudioConfig) application.Chime {
	if !cfg.Chime {
		return application.NoopChime{}
	}
	return notify.NewChime()
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	}

	return slog.New(handler)
}
