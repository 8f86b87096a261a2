package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger(level Level, formatter Formatter) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(level),
		WithFormatter(formatter),
		WithOutput(NewWriterOutput(&buf)),
	)
	return l, &buf
}

func TestLevelGating(t *testing.T) {
	l, buf := newTestLogger(WarnLevel, &TextFormatter{DisableTimestamp: true})
	l.Debug("drop me")
	l.Info("drop me too")
	l.Warn("keep me")
	out := buf.String()
	if strings.Contains(out, "drop me") {
		t.Fatalf("below-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "keep me") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestTextFormatterFields(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, &TextFormatter{DisableTimestamp: true})
	l.Info("window saved", Str("window", "abc"), Int("entries", 3))
	out := strings.TrimSpace(buf.String())
	if out != "INFO window saved entries=3 window=abc" {
		t.Fatalf("unexpected line: %q", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, &JSONFormatter{})
	l.Info("hello", Str("k", "v"))
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("not valid json: %v", err)
	}
	if m["msg"] != "hello" || m["level"] != "INFO" || m["k"] != "v" {
		t.Fatalf("unexpected object: %v", m)
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, &TextFormatter{DisableTimestamp: true})
	cl := l.With(Component("archive"))
	cl.Info("saved")
	if !strings.Contains(buf.String(), "component=archive") {
		t.Fatalf("component field missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"Warn":  WarnLevel,
		"error": ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %v got %v", in, want, got)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestToStdLogger(t *testing.T) {
	l, buf := newTestLogger(InfoLevel, &TextFormatter{DisableTimestamp: true})
	std := ToStdLogger(l, InfoLevel)
	std.Println("from stdlib")
	if !strings.Contains(buf.String(), "from stdlib") {
		t.Fatalf("stdlib message not forwarded: %q", buf.String())
	}
}
