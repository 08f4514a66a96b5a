// Package typewriter types a fixed list of phrases one character per tick,
// forever.
package typewriter

// Machine is the (phrase, character) state. Each Tick appends the next
// character of the current phrase. The tick that types the last character
// also clears the display and moves to the next phrase, wrapping after the
// last one, so a fully typed phrase is never shown.
type Machine struct {
	phrases [][]rune
	phrase  int
	char    int
	text    []rune
}

// NewMachine returns a machine over phrases. Empty phrases are dropped.
func NewMachine(phrases []string) Machine {
	m := Machine{}
	for _, p := range phrases {
		if p == "" {
			continue
		}
		m.phrases = append(m.phrases, []rune(p))
	}
	return m
}

// Tick advances one character.
func (m *Machine) Tick() {
	if len(m.phrases) == 0 {
		return
	}
	current := m.phrases[m.phrase]
	n := len(m.text)
	m.text = append(m.text[:n:n], current[m.char])
	m.char++
	if m.char >= len(current) {
		m.phrase = (m.phrase + 1) % len(m.phrases)
		m.char = 0
		m.text = nil
	}
}

// Text returns what is currently displayed.
func (m Machine) Text() string { return string(m.text) }

// Phrase returns the index of the phrase being typed.
func (m Machine) Phrase() int { return m.phrase }

// Position returns the index of the next character to type.
func (m Machine) Position() int { return m.char }
