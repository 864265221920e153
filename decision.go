package streamfilter

// DecisionType enumerates the six ways a callback can dispose of a match.
type DecisionType int

const (
	// Pass keeps the matched keyword in the buffer unchanged.
	Pass DecisionType = iota
	// Drop removes the matched keyword from the tail of the buffer.
	Drop
	// Replace removes the matched keyword and appends Replacement.
	Replace
	// Halt aborts the stream immediately.
	Halt
	// ContinueDrop enters persistent drop mode.
	ContinueDrop
	// ContinuePass leaves persistent drop mode.
	ContinuePass
)

// Decision is the tagged value a Callback returns for a match.
type Decision struct {
	Type        DecisionType
	Replacement string // only meaningful when Type == Replace
}

// PassDecision leaves the matched keyword in place.
func PassDecision() Decision { return Decision{Type: Pass} }

// DropDecision removes the matched keyword from the buffer.
func DropDecision() Decision { return Decision{Type: Drop} }

// ReplaceDecision removes the matched keyword and appends text.
func ReplaceDecision(text string) Decision { return Decision{Type: Replace, Replacement: text} }

// HaltDecision aborts the stream.
func HaltDecision() Decision { return Decision{Type: Halt} }

// ContinueDropDecision enters persistent drop mode.
func ContinueDropDecision() Decision { return Decision{Type: ContinueDrop} }

// ContinuePassDecision leaves persistent drop mode.
func ContinuePassDecision() Decision { return Decision{Type: ContinuePass} }

// ActionContext is the read-only argument delivered to a Callback at the
// instant a keyword matches.
type ActionContext struct {
	// Keyword is the matched keyword.
	Keyword string
	// Buffer is a snapshot of the buffer contents at match time.
	Buffer []rune
	// AbsolutePos is the 1-based index of the last character consumed.
	AbsolutePos int
	// History is the processor's history recorder (may be the no-op
	// variant returned by NewNullHistory).
	History History
}

// Callback observes a match and decides how to treat it. A nil return is
// treated as PassDecision().
type Callback func(ctx ActionContext) *Decision
