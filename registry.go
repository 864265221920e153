package streamfilter

import (
	"sync"

	"go.uber.org/zap"
)

// Handle identifies one specific (keyword, callback) registration returned
// by Register, for later removal via Deregister. Go function values carry
// no reliable identity of their own — reflect.Value.Pointer() on a Func
// collapses to the shared code-entry address for every closure instantiated
// from the same literal, regardless of what each one captured — so Handle
// is the registry's own counter-assigned identity instead.
type Handle struct {
	keyword string
	id      uint64
}

// registration pairs a callback with the monotonic id its Handle carries.
type registration struct {
	id       uint64
	callback Callback
}

// Registry owns the set of (keyword -> ordered callbacks) mappings and
// compiles them into a multi-pattern matching automaton with failure
// links. Mutating the registry marks the compiled automaton stale; it is
// rebuilt lazily the next time it is needed.
//
// register/deregister/compile must not overlap with each other or with a
// Processor's traversal of the compiled automaton.
type Registry struct {
	mu sync.Mutex

	keywords map[string][]registration
	nextID   uint64
	compiled bool
	root     *anode
	maxLen   int

	logger *zap.Logger
}

// NewRegistry returns an empty Registry. A nil logger is replaced with a
// no-op logger, matching the pack's convention for optional loggers.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		keywords: make(map[string][]registration),
		logger:   logger,
	}
}

// Register appends callback to the list for keyword, in registration
// order, and returns a Handle identifying this exact registration. The
// same callback value may be registered more than once, for the same
// keyword or different ones; each occurrence gets its own Handle and runs
// independently on a match.
func (r *Registry) Register(keyword string, callback Callback) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.keywords[keyword] = append(r.keywords[keyword], registration{id: id, callback: callback})
	r.compiled = false
	return Handle{keyword: keyword, id: id}
}

// Deregister removes the single registration identified by h. Removing the
// last registration for a keyword removes the keyword. A handle whose
// keyword is missing, or that was already deregistered, is a silent no-op.
func (r *Registry) Deregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs, ok := r.keywords[h.keyword]
	if !ok {
		return
	}
	for i := range regs {
		if regs[i].id == h.id {
			regs = append(regs[:i], regs[i+1:]...)
			if len(regs) == 0 {
				delete(r.keywords, h.keyword)
			} else {
				r.keywords[h.keyword] = regs
			}
			r.compiled = false
			return
		}
	}
}

// DeregisterKeyword removes every callback registered for keyword,
// regardless of how many Handles were issued for it. A missing keyword is
// a silent no-op.
func (r *Registry) DeregisterKeyword(keyword string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keywords[keyword]; !ok {
		return
	}
	delete(r.keywords, keyword)
	r.compiled = false
}

// Compile rebuilds the automaton from the current keyword set.
func (r *Registry) Compile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compileLocked()
}

func (r *Registry) compileLocked() {
	r.root, r.maxLen = buildAutomaton(r.keywords)
	r.compiled = true
	r.logger.Debug("compiled keyword automaton",
		zap.Int("keywords", len(r.keywords)),
		zap.Int("max_len", r.maxLen),
	)
}

// MaxLen returns the length, in runes, of the longest registered keyword
// (0 if the registry is empty). Compiles the automaton if stale.
func (r *Registry) MaxLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.compiled {
		r.compileLocked()
	}
	return r.maxLen
}

// snapshot returns the compiled root and max length, compiling first if
// stale. Used by Processor to bind to a compiled automaton.
func (r *Registry) snapshot() (*anode, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.compiled {
		r.compileLocked()
	}
	return r.root, r.maxLen
}
