package streamfilter

import "github.com/google/uuid"

// Action records a single callback-returned decision.
type Action struct {
	Pos      int
	Keyword  string
	Decision Decision
}

// History is an append-only log of inputs, outputs, and action decisions
// for one Processor instance.
type History interface {
	recordInput(ch rune)
	recordOutput(ch rune)
	recordAction(pos int, keyword string, decision Decision)

	// Inputs returns the exact sequence of characters passed to Process.
	Inputs() []rune
	// Outputs returns the exact sequence of characters emitted by Process and Flush.
	Outputs() []rune
	// Actions returns every decision returned by a callback, in order.
	Actions() []Action
	// ID identifies the processor this history belongs to, for log correlation.
	ID() uuid.UUID
}

// recorder is the real History implementation.
type recorder struct {
	id      uuid.UUID
	inputs  []rune
	outputs []rune
	actions []Action
}

// NewHistory returns a recording History.
func NewHistory() History {
	return &recorder{id: uuid.New()}
}

func (h *recorder) recordInput(ch rune)  { h.inputs = append(h.inputs, ch) }
func (h *recorder) recordOutput(ch rune) { h.outputs = append(h.outputs, ch) }
func (h *recorder) recordAction(pos int, keyword string, decision Decision) {
	h.actions = append(h.actions, Action{Pos: pos, Keyword: keyword, Decision: decision})
}

func (h *recorder) Inputs() []rune {
	out := make([]rune, len(h.inputs))
	copy(out, h.inputs)
	return out
}

func (h *recorder) Outputs() []rune {
	out := make([]rune, len(h.outputs))
	copy(out, h.outputs)
	return out
}

func (h *recorder) Actions() []Action {
	out := make([]Action, len(h.actions))
	copy(out, h.actions)
	return out
}

func (h *recorder) ID() uuid.UUID { return h.id }

// nullHistory is the no-op History variant used when recording is disabled.
type nullHistory struct{ id uuid.UUID }

// NewNullHistory returns a History that discards everything it's given.
func NewNullHistory() History { return &nullHistory{id: uuid.New()} }

func (*nullHistory) recordInput(rune)                   {}
func (*nullHistory) recordOutput(rune)                  {}
func (*nullHistory) recordAction(int, string, Decision) {}
func (*nullHistory) Inputs() []rune                     { return nil }
func (*nullHistory) Outputs() []rune                    { return nil }
func (*nullHistory) Actions() []Action                  { return nil }
func (h *nullHistory) ID() uuid.UUID                    { return h.id }
