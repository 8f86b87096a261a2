package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func TestDemoListShowRoundTrip(t *testing.T) {
	dir := t.TempDir()

	out := runCommand(t, NewDemoCommand(nil), "--data-dir", dir)
	if !strings.Contains(out, "Hi!\nTraveled Distance 5\n") {
		t.Fatalf("demo output missing entries: %q", out)
	}

	listOut := runCommand(t, NewWindowCommand(nil), "list", "--data-dir", dir)
	lines := strings.Split(strings.TrimSpace(listOut), "\n")
	if len(lines) != 1 {
		t.Fatalf("want one archived window, got %d: %q", len(lines), listOut)
	}
	if !strings.Contains(lines[0], "entries=2") {
		t.Fatalf("unexpected list line: %q", lines[0])
	}
	windowID := strings.Fields(lines[0])[0]

	showOut := runCommand(t, NewWindowCommand(nil), "show", "--data-dir", dir, "--id", windowID)
	if showOut != "Hi!\nTraveled Distance 5\n" {
		t.Fatalf("unexpected show output: %q", showOut)
	}

	filtered := runCommand(t, NewWindowCommand(nil), "show", "--data-dir", dir, "--id", windowID,
		"--filter", `text.contains("Distance")`)
	if filtered != "Traveled Distance 5\n" {
		t.Fatalf("unexpected filtered output: %q", filtered)
	}
}

func TestShowRejectsBadID(t *testing.T) {
	dir := t.TempDir()
	cmd := NewWindowCommand(nil)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"show", "--data-dir", dir, "--id", "not-hex"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestPurgeRequiresConfirm(t *testing.T) {
	dir := t.TempDir()
	runCommand(t, NewDemoCommand(nil), "--data-dir", dir)
	// the cutoff has millisecond resolution; let the window age past it
	time.Sleep(5 * time.Millisecond)

	cmd := NewWindowCommand(nil)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"purge", "--data-dir", dir, "--older-than", "1ns"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--confirm") {
		t.Fatalf("expected confirm refusal, got %v", err)
	}

	out := runCommand(t, NewWindowCommand(nil), "purge", "--data-dir", dir, "--older-than", "1ns", "--confirm")
	if !strings.Contains(out, "purged 1 windows") {
		t.Fatalf("unexpected purge output: %q", out)
	}
}
