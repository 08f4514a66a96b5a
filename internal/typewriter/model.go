package typewriter

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the delay between characters.
const DefaultInterval = 150 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances a Model. ID routes the message to the Model that
// scheduled it; tag drops stale ticks if a Model is restarted.
type TickMsg struct {
	Time time.Time
	ID   int
	tag  int
}

// Model is the bubbletea wrapper around Machine.
type Model struct {
	Interval time.Duration

	machine Machine
	id      int
	tag     int
}

// New returns a Model typing phrases every interval. A non-positive interval
// uses DefaultInterval.
func New(phrases []string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		Interval: interval,
		machine:  NewMachine(phrases),
		id:       nextID(),
	}
}

// ID returns the model's identifier.
func (m Model) ID() int { return m.id }

// Init starts the ticking.
func (m Model) Init() tea.Cmd { return m.tick() }

// Tick returns the message that starts the ticking, for callers that batch
// it themselves.
func (m Model) Tick() tea.Msg {
	return TickMsg{Time: time.Now(), ID: m.id, tag: m.tag}
}

// Update handles TickMsg addressed to this model and ignores everything else.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok {
		return m, nil
	}
	if tick.ID > 0 && tick.ID != m.id {
		return m, nil
	}
	if tick.tag > 0 && tick.tag != m.tag {
		return m, nil
	}
	m.machine.Tick()
	m.tag++
	return m, m.tick()
}

// View returns the typed text.
func (m Model) View() string { return m.machine.Text() }

// Machine returns the underlying state.
func (m Model) Machine() Machine { return m.machine }

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id, tag: tag}
	})
}
