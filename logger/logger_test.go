package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("window", "30").Msg("resolved")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log output %q is not JSON: %v", buf.String(), err)
	}
	if got["message"] != "resolved" || got["window"] != "30" || got["level"] != "info" {
		t.Errorf("log entry = %v, want message, window and level fields", got)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tc := range testCases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := New("loud"); err == nil {
		t.Errorf("New(%q) error = nil, want an error", "loud")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter(&buf))
	log := FromContext(ctx)
	log.Warn().Msg("stale snapshot")
	if buf.Len() == 0 {
		t.Errorf("FromContext() logger did not write to the stored writer")
	}

	if lvl := FromContext(context.Background()).GetLevel(); lvl != zerolog.Disabled {
		t.Errorf("FromContext(empty).GetLevel() = %v, want disabled", lvl)
	}
}
