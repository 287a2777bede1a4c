package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio    AudioConfig    `yaml:"audio"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Database DatabaseConfig `yaml:"database"`
	TTS      TTSConfig      `yaml:"tts"`
	Journal  JournalConfig  `yaml:"journal"`
	Log      LogConfig      `yaml:"log"`
}

type AudioConfig struct {
	Source      string `yaml:"source"`
	FileDir     string `yaml:"file_dir"`
	SampleRate  int    `yaml:"sample_rate"`
	MaxSeconds  int    `yaml:"max_seconds"`
	MaxAttempts int    `yaml:"max_attempts"`
	Chime       bool   `yaml:"chime"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type DatabaseConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"ssl_mode"`
	MaintenanceDB string `yaml:"maintenance_db"`
}

type TTSConfig struct {
	Engine string `yaml:"engine"`
	Voice  string `yaml:"voice"`
	Rate   int    `yaml:"rate"`
}

type JournalConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.MaxSeconds == 0 {
		c.Audio.MaxSeconds = 10
	}
	if c.Audio.MaxAttempts == 0 {
		c.Audio.MaxAttempts = 3
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "en"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaintenanceDB == "" {
		c.Database.MaintenanceDB = "template1"
	}
	if c.TTS.Engine == "" {
		c.TTS.Engine = "espeak"
	}
	if c.TTS.Rate == 0 {
		c.TTS.Rate = 150
	}
	if c.Journal.Path == "" {
		c.Journal.Path = "query_log.txt"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
