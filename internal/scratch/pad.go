// Package scratch is the local task pad: ad-hoc tasks with a free-text note,
// held in memory and never sent to the service.
package scratch

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one pad entry. Completed is a presentation mark only.
type Task struct {
	ID        string
	Task      string
	Data      string
	Completed bool
}

// Pad keeps tasks in insertion order, addressed by a generated id so that
// removals never depend on row positions.
type Pad struct {
	order []string
	tasks map[string]*Task
	newID func() string
}

// New returns an empty pad.
func New() *Pad {
	return &Pad{
		tasks: make(map[string]*Task),
		newID: uuid.NewString,
	}
}

// Add appends a task and returns it. Both fields must be non-blank after
// trimming; otherwise nothing changes and ok is false.
func (p *Pad) Add(task, data string) (Task, bool) {
	task = strings.TrimSpace(task)
	data = strings.TrimSpace(data)
	if task == "" || data == "" {
		return Task{}, false
	}
	t := &Task{ID: p.newID(), Task: task, Data: data}
	p.order = append(p.order, t.ID)
	p.tasks[t.ID] = t
	return *t, true
}

// Remove deletes the task with id. It reports whether one was removed.
func (p *Pad) Remove(id string) bool {
	if _, ok := p.tasks[id]; !ok {
		return false
	}
	delete(p.tasks, id)
	idx := p.IndexOf(id)
	p.order = append(p.order[:idx], p.order[idx+1:]...)
	return true
}

// Toggle flips the completed mark of id and returns the new value.
func (p *Pad) Toggle(id string) (bool, bool) {
	t, ok := p.tasks[id]
	if !ok {
		return false, false
	}
	t.Completed = !t.Completed
	return t.Completed, true
}

// ClearCompleted removes every completed task and returns how many went.
// Targets are collected before anything is removed.
func (p *Pad) ClearCompleted() int {
	var targets []string
	for _, id := range p.order {
		if p.tasks[id].Completed {
			targets = append(targets, id)
		}
	}
	for _, id := range targets {
		p.Remove(id)
	}
	return len(targets)
}

// Get returns a copy of the task with id.
func (p *Pad) Get(id string) (Task, bool) {
	t, ok := p.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Tasks returns copies of all tasks in insertion order.
func (p *Pad) Tasks() []Task {
	out := make([]Task, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.tasks[id])
	}
	return out
}

// Len returns the number of tasks.
func (p *Pad) Len() int { return len(p.order) }

// IndexOf returns the display position of id, or -1.
func (p *Pad) IndexOf(id string) int {
	for i, candidate := range p.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Annotation returns the note shown when the task is selected.
func (p *Pad) Annotation(id string) string {
	if t, ok := p.tasks[id]; ok {
		return t.Data
	}
	return ""
}
