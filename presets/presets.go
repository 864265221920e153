// Package presets provides convenience constructors that register common
// keyword rules on a streamfilter.Registry, in the spirit of the
// higher-level stream manager in the original llm_stream_manager sibling
// package (a fixed set of built-in keyword rules over a registry). These
// are not part of the core; they are thin helpers built on the exported
// Registry API.
package presets

import "github.com/devoprohan/streamfilter"

// Redactor registers a DropDecision callback for every marker, so that
// any of the given keywords is silently removed from the stream wherever
// it appears.
func Redactor(registry *streamfilter.Registry, markers ...string) {
	for _, m := range markers {
		registry.Register(m, func(streamfilter.ActionContext) *streamfilter.Decision {
			d := streamfilter.DropDecision()
			return &d
		})
	}
}

// Substitutor registers a ReplaceDecision callback mapping each key in
// replacements to its corresponding value whenever the key is matched.
func Substitutor(registry *streamfilter.Registry, replacements map[string]string) {
	for kw, repl := range replacements {
		repl := repl
		registry.Register(kw, func(streamfilter.ActionContext) *streamfilter.Decision {
			d := streamfilter.ReplaceDecision(repl)
			return &d
		})
	}
}

// Fence registers a pair of keywords that toggle persistent drop mode:
// everything from open (inclusive) up to close is suppressed, and the close
// marker itself is emitted when drop mode is left, the way a redaction
// fence around a secret block would be expressed.
func Fence(registry *streamfilter.Registry, open, close string) {
	registry.Register(open, func(streamfilter.ActionContext) *streamfilter.Decision {
		d := streamfilter.ContinueDropDecision()
		return &d
	})
	registry.Register(close, func(streamfilter.ActionContext) *streamfilter.Decision {
		d := streamfilter.ContinuePassDecision()
		return &d
	})
}
