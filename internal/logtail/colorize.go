package logtail

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer highlights slog text records for terminal output.
type Colorizer struct {
	timestamp lipgloss.Style
	debug     lipgloss.Style
	info      lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
	message   lipgloss.Style
}

// NewColorizer builds styles against r. Passing the renderer of the output
// stream keeps colors off when it is not a terminal.
func NewColorizer(r *lipgloss.Renderer) Colorizer {
	return Colorizer{
		timestamp: r.NewStyle().Foreground(lipgloss.Color("#808080")),
		debug:     r.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		info:      r.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		warn:      r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		err:       r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		message:   r.NewStyle().Bold(true),
	}
}

// Line colors the time, level and msg fields of one record and leaves the
// rest untouched.
func (c Colorizer) Line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	rest := line
	var b strings.Builder

	if value, after, ok := cutField(rest, "time="); ok {
		b.WriteString(c.timestamp.Render(value))
		b.WriteByte(' ')
		rest = after
	}
	if value, after, ok := cutField(rest, "level="); ok {
		b.WriteString(c.levelStyle(value).Render(value))
		b.WriteByte(' ')
		rest = after
	}
	if msg, after, ok := cutMessage(rest); ok {
		b.WriteString(c.message.Render(msg))
		if after != "" {
			b.WriteByte(' ')
		}
		rest = after
	}
	b.WriteString(rest)
	return b.String()
}

// Lines colors every line.
func (c Colorizer) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = c.Line(line)
	}
	return out
}

func (c Colorizer) levelStyle(value string) lipgloss.Style {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return c.info
	}
	switch {
	case level >= slog.LevelError:
		return c.err
	case level >= slog.LevelWarn:
		return c.warn
	case level >= slog.LevelInfo:
		return c.info
	default:
		return c.debug
	}
}

func cutField(s, prefix string) (value, rest string, ok bool) {
	after, found := strings.CutPrefix(s, prefix)
	if !found {
		return "", s, false
	}
	value, rest, _ = strings.Cut(after, " ")
	return value, rest, true
}

// cutMessage splits a leading msg=... field, which slog quotes when the
// message contains spaces.
func cutMessage(s string) (msg, rest string, ok bool) {
	after, found := strings.CutPrefix(s, "msg=")
	if !found {
		return "", s, false
	}
	if strings.HasPrefix(after, `"`) {
		for i := 1; i < len(after); i++ {
			switch after[i] {
			case '\\':
				i++
			case '"':
				return after[1:i], strings.TrimPrefix(after[i+1:], " "), true
			}
		}
		return after, "", true
	}
	msg, rest, _ = strings.Cut(after, " ")
	return msg, rest, true
}
