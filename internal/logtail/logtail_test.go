package logtail

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", lines, err)
	}
}

func TestLineLevel(t *testing.T) {
	tests := []struct {
		line string
		want slog.Level
		ok   bool
	}{
		{`time=2026-10-16T10:00:00Z level=WARN msg="action failed" action=add`, slog.LevelWarn, true},
		{`time=x level=DEBUG msg=loaded count=2`, slog.LevelDebug, true},
		{`time=x level=ERROR+2 msg=x`, slog.LevelError + 2, true},
		{`plain text`, 0, false},
		{`level=LOUD msg=x`, 0, false},
	}
	for _, tt := range tests {
		got, ok := LineLevel(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LineLevel(%q) = %v, %v, want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterLevel(t *testing.T) {
	lines := []string{
		"time=a level=DEBUG msg=one",
		"time=b level=INFO msg=two",
		"time=c level=WARN msg=three",
		"stray line",
		"time=d level=ERROR msg=four",
	}
	got := FilterLevel(lines, slog.LevelWarn)
	want := []string{lines[2], lines[4]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterLevel(warn) = %v, want %v", got, want)
	}
	if got := FilterLevel(lines, slog.LevelDebug); len(got) != len(lines) {
		t.Fatalf("FilterLevel(debug) kept %d lines, want %d", len(got), len(lines))
	}
}

func TestColorizer_PlainRendererKeepsText(t *testing.T) {
	c := NewColorizer(lipgloss.NewRenderer(io.Discard))
	lines := []string{
		"",
		"   ",
		`time=2026-10-16T10:00:00Z level=WARN msg="action failed" action=add error="Error adding todo"`,
		`time=2026-10-16T10:00:01Z level=DEBUG msg=loaded count=2`,
		`time=2026-10-16T10:00:02Z level=INFO msg="logged out"`,
		"free text",
	}
	want := []string{
		"",
		"   ",
		`2026-10-16T10:00:00Z WARN action failed action=add error="Error adding todo"`,
		`2026-10-16T10:00:01Z DEBUG loaded count=2`,
		`2026-10-16T10:00:02Z INFO logged out`,
		"free text",
	}
	got := c.Lines(lines)
	for i := range got {
		got[i] = ansi.Strip(got[i])
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
}

func TestCutMessage_EscapedQuotes(t *testing.T) {
	msg, rest, ok := cutMessage(`msg="say \"hi\" now" k=v`)
	if !ok || msg != `say \"hi\" now` || rest != "k=v" {
		t.Fatalf("cutMessage = %q, %q, %v", msg, rest, ok)
	}
}
