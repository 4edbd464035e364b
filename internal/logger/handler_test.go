package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg Config) (*filteringHandler, *bytes.Buffer) {
	var out bytes.Buffer
	cfg.process()
	base := slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &out
}

func record(msg, tag string) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandler_Tags(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		tag      string
		wantSeen bool
	}{
		{"no filters", Config{}, "session", true},
		{"disabled tag", Config{DisabledTags: []string{"Session"}}, "session", false},
		{"enabled tag matches", Config{EnabledTags: []string{"gateway"}}, "gateway", true},
		{"enabled tag mismatch", Config{EnabledTags: []string{"gateway"}}, "session", false},
		{"untagged with enabled list", Config{EnabledTags: []string{"gateway"}}, "", false},
		{"disabled wins over enabled", Config{EnabledTags: []string{"x"}, DisabledTags: []string{"x"}}, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := newTestHandler(tt.cfg)
			if err := h.Handle(context.Background(), record("hello", tt.tag)); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			seen := strings.Contains(out.String(), "hello")
			if seen != tt.wantSeen {
				t.Fatalf("seen=%v, want %v (output %q)", seen, tt.wantSeen, out.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v,%v, want %v,true", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("verbose"); ok {
		t.Fatalf("expected unknown level to report false")
	}
}
