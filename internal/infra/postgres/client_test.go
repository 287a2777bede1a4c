package postgres

import (
	"testing"
	"time"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.local",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Name:     "shop",
		SSLMode:  "disable",
	}

	got := cfg.dsn("shop")
	want := "host=db.local port=5433 user=app password=secret dbname=shop sslmode=disable"
	if got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}

	if got := cfg.dsn("template1"); got != "host=db.local port=5433 user=app password=secret dbname=template1 sslmode=disable" {
		t.Errorf("maintenance dsn = %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{[]byte("hello"), "hello"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{true, "true"},
		{time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC), "2025-08-01 12:30:00"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
