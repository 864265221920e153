package streamfilter

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Processor is the per-character driver: it owns a sliding character
// buffer, the current automaton node, a drop/pass mode flag, an absolute
// input position, and a reference to the History recorder. It is bound to
// one Registry at construction time (which is compiled if stale) and is
// not safe for concurrent mutation.
//
// A Processor may not be reused after Process has returned ErrHalted.
type Processor struct {
	root   *anode
	maxLen int
	node   *anode

	buffer   []rune
	pos      int
	dropMode bool
	halted   bool

	history History
	logger  *zap.Logger
}

// NewProcessor binds a Processor to registry (compiling it if stale). If
// recordHistory is true a recording History is used; otherwise a no-op
// variant is used so callbacks can still read ctx.History safely. A nil
// logger is replaced with a no-op logger.
func NewProcessor(registry *Registry, recordHistory bool, logger *zap.Logger) *Processor {
	root, maxLen := registry.snapshot()
	if logger == nil {
		logger = zap.NewNop()
	}
	var h History
	if recordHistory {
		h = NewHistory()
	} else {
		h = NewNullHistory()
	}
	return &Processor{
		root:    root,
		maxLen:  maxLen,
		node:    root,
		history: h,
		logger:  logger,
	}
}

// ID identifies this processor's history, for log correlation.
func (p *Processor) ID() uuid.UUID { return p.history.ID() }

// History returns the processor's history recorder (real or no-op).
func (p *Processor) History() History { return p.history }

// Process consumes one character and returns the characters it causes to
// be emitted. If a callback returns HaltDecision(), Process returns
// ErrHalted and the Processor may not be used again except via Flush,
// which will return nothing.
func (p *Processor) Process(ch rune) ([]rune, error) {
	if p.halted {
		return nil, ErrHaltedAfterFlush
	}

	var out []rune

	p.history.recordInput(ch)
	p.buffer = append(p.buffer, ch)
	p.pos++

	p.node = step(p.root, p.node, ch)

	if len(p.node.outputs) > 0 {
		kw, callbacks := selectMatch(p.node.outputs)
		for _, cb := range callbacks {
			ctx := ActionContext{
				Keyword:     kw,
				Buffer:      append([]rune(nil), p.buffer...),
				AbsolutePos: p.pos,
				History:     p.history,
			}
			decision := cb(ctx)
			if decision == nil {
				continue
			}
			p.history.recordAction(p.pos, kw, *decision)
			halted, emitted := p.apply(kw, *decision)
			out = append(out, emitted...)
			if halted {
				p.halted = true
				p.logger.Debug("stream halted", zap.String("keyword", kw), zap.Int("pos", p.pos))
				return out, ErrHalted
			}
		}
		p.node = p.root
	}

	// Lazy flush: the buffer may hold at most maxLen characters, since
	// anything beyond that cannot extend the head into a registered
	// keyword.
	if len(p.buffer) > p.maxLen {
		h := p.buffer[0]
		p.buffer = p.buffer[1:]
		if !p.dropMode {
			p.history.recordOutput(h)
			out = append(out, h)
		}
	}

	return out, nil
}

// selectMatch picks the single match to dispatch from a node's output
// list by longest keyword length, breaking ties by registration order.
// The output list is not guaranteed to be sorted by length, so this is a
// linear scan rather than a simple max().
func selectMatch(outputs []output) (string, []Callback) {
	best := outputs[0]
	for _, o := range outputs[1:] {
		if len([]rune(o.keyword)) > len([]rune(best.keyword)) {
			best = o
		}
	}
	return best.keyword, best.callbacks
}

// apply applies a decision to the buffer/drop-mode state machine,
// returning whether the stream halted and any characters the decision
// itself caused to be emitted (CONTINUE_DROP/CONTINUE_PASS entry/exit
// edges).
func (p *Processor) apply(kw string, d Decision) (halted bool, emitted []rune) {
	kwLen := len([]rune(kw))
	switch d.Type {
	case Pass:
		// no-op: the matched characters remain in the buffer tail.
	case Drop:
		p.popTail(kwLen)
	case Replace:
		p.popTail(kwLen)
		p.buffer = append(p.buffer, []rune(d.Replacement)...)
	case Halt:
		return true, nil
	case ContinueDrop:
		if !p.dropMode {
			prior, _ := p.splitTail(kwLen)
			p.buffer = nil
			for _, c := range prior {
				p.history.recordOutput(c)
				emitted = append(emitted, c)
			}
			p.dropMode = true
		}
	case ContinuePass:
		if p.dropMode {
			_, marker := p.splitTail(kwLen)
			p.buffer = nil
			for _, c := range marker {
				p.history.recordOutput(c)
				emitted = append(emitted, c)
			}
			p.dropMode = false
		}
	}
	return false, emitted
}

// popTail removes the last n characters from the buffer (the just-matched
// keyword, guaranteed present as a contiguous tail).
func (p *Processor) popTail(n int) {
	if n > len(p.buffer) {
		n = len(p.buffer)
	}
	p.buffer = p.buffer[:len(p.buffer)-n]
}

// splitTail splits the buffer into everything before the last n
// characters (prior) and the last n characters themselves (marker).
func (p *Processor) splitTail(n int) (prior, marker []rune) {
	if n > len(p.buffer) {
		n = len(p.buffer)
	}
	cut := len(p.buffer) - n
	prior = append([]rune(nil), p.buffer[:cut]...)
	marker = append([]rune(nil), p.buffer[cut:]...)
	return prior, marker
}

// Flush returns all remaining buffered characters (or nothing, if in drop
// mode) and clears the buffer. Call it once the upstream producer is
// exhausted. A processor that halted never flushes its remaining buffer.
func (p *Processor) Flush() []rune {
	if p.halted {
		p.buffer = nil
		return nil
	}
	if p.dropMode {
		p.buffer = nil
		return nil
	}
	rem := p.buffer
	for _, c := range rem {
		p.history.recordOutput(c)
	}
	p.buffer = nil
	return rem
}
