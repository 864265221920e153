package streamfilter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Config configures an Adapter: the yield-mode grammar is
// "char" | "token" | "chunk:<positive integer>".
type Config struct {
	YieldMode     string
	RecordHistory bool
}

const (
	yieldChar        = "char"
	yieldToken       = "token"
	yieldChunkPrefix = "chunk:"
)

// validate checks Config. YieldMode is the only field that can fail
// validation; RecordHistory is a bool with no invalid state.
func (c Config) validate() error {
	_, _, err := parseYieldMode(c.YieldMode)
	return err
}

// parseYieldMode resolves a yield-mode string into (mode, chunkSize).
// mode is one of yieldChar/yieldToken/yieldChunkPrefix; chunkSize is only
// meaningful for chunk mode.
func parseYieldMode(s string) (mode string, chunkSize int, err error) {
	switch {
	case s == yieldChar:
		return yieldChar, 0, nil
	case s == yieldToken:
		return yieldToken, 0, nil
	case strings.HasPrefix(s, yieldChunkPrefix):
		n, convErr := strconv.Atoi(strings.TrimPrefix(s, yieldChunkPrefix))
		if convErr != nil || n < 1 {
			return "", 0, fmt.Errorf("%w: %q", ErrInvalidYieldMode, s)
		}
		return yieldChunkPrefix, n, nil
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidYieldMode, s)
	}
}

// Adapter wraps a registry and repackages the Processor's per-character
// decisions into the caller-selected yield mode for both synchronous and
// asynchronous token producers.
type Adapter struct {
	registry *Registry
	mode     string
	chunkN   int
	cfg      Config
	logger   *zap.Logger
}

// NewAdapter validates cfg and returns an Adapter bound to registry. A nil
// logger is replaced with a no-op logger.
func NewAdapter(registry *Registry, cfg Config, logger *zap.Logger) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	mode, chunkN, _ := parseYieldMode(cfg.YieldMode)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{registry: registry, mode: mode, chunkN: chunkN, cfg: cfg, logger: logger}, nil
}

// SyncProducer is a finite source of string tokens, pulled synchronously.
// It returns ok == false once exhausted.
type SyncProducer func() (token string, ok bool)

// AsyncProducer is a finite, cooperatively-suspended source of string
// tokens delivered over a channel; it closes the channel once exhausted
// and honors ctx cancellation.
type AsyncProducer func(ctx context.Context) <-chan string

// chunker accumulates characters across repack calls for "chunk:N" mode,
// since a chunk boundary may straddle multiple process()/flush() calls.
type chunker struct {
	pending []rune
	size    int
}

func (c *chunker) push(chars []rune) []string {
	c.pending = append(c.pending, chars...)
	var out []string
	for len(c.pending) >= c.size {
		out = append(out, string(c.pending[:c.size]))
		c.pending = c.pending[c.size:]
	}
	return out
}

func (c *chunker) drain() []string {
	if len(c.pending) == 0 {
		return nil
	}
	out := []string{string(c.pending)}
	c.pending = nil
	return out
}

// repack regroups emitted characters per the adapter's yield mode. In
// "token" mode it is the caller's responsibility to join the whole-token
// result itself (one output token per input token); repack is only used
// for "char" and "chunk:N" modes, where output can span producer tokens.
func (a *Adapter) repack(ck *chunker, chars []rune) []string {
	switch a.mode {
	case yieldChar:
		out := make([]string, len(chars))
		for i, c := range chars {
			out[i] = string(c)
		}
		return out
	case yieldChunkPrefix:
		return ck.push(chars)
	default:
		return nil
	}
}

// Sync drives producer through a freshly constructed Processor and returns
// a SyncProducer of output tokens in the adapter's yield mode. If a
// callback halts the stream, the returned producer stops (without calling
// Flush) and signals exhaustion; the halt is recorded via Err.
func (a *Adapter) Sync(producer SyncProducer) *SyncResult {
	sp := NewProcessor(a.registry, a.cfg.RecordHistory, a.logger)
	ck := &chunker{size: a.chunkN}
	queue := make([]string, 0, 1)
	result := &SyncResult{processor: sp}

	result.next = func() (string, bool) {
		for len(queue) == 0 {
			if result.err != nil {
				return "", false
			}
			token, ok := producer()
			if !ok {
				if a.mode != yieldToken {
					rem := sp.Flush()
					queue = append(queue, a.repack(ck, rem)...)
					queue = append(queue, ck.drain()...)
				}
				if len(queue) == 0 {
					return "", false
				}
				break
			}

			var outChars []rune
			halted := false
			for _, ch := range token {
				chars, err := sp.Process(ch)
				outChars = append(outChars, chars...)
				if err != nil {
					if errors.Is(err, ErrHalted) {
						halted = true
						result.err = ErrHalted
					}
					break
				}
			}

			if a.mode == yieldToken {
				if !halted {
					outChars = append(outChars, sp.Flush()...)
				}
				queue = append(queue, string(outChars))
			} else {
				queue = append(queue, a.repack(ck, outChars)...)
			}

			if halted {
				break
			}
		}
		if len(queue) == 0 {
			return "", false
		}
		tok := queue[0]
		queue = queue[1:]
		return tok, true
	}
	return result
}

// SyncResult is the producer returned by Adapter.Sync, plus the terminal
// error (if the stream halted).
type SyncResult struct {
	next      func() (string, bool)
	processor *Processor
	err       error
}

// Next pulls the next output token, matching SyncProducer's shape.
func (r *SyncResult) Next() (string, bool) { return r.next() }

// Err returns ErrHalted if the stream was halted by a callback, else nil.
func (r *SyncResult) Err() error { return r.err }

// Processor exposes the bound Processor, e.g. to inspect its History.
func (r *SyncResult) Processor() *Processor { return r.processor }

// Wrap dispatches target to Sync or Async depending on its shape. target
// must be a SyncProducer or an AsyncProducer; anything else is
// ErrNotAGenerator.
func (a *Adapter) Wrap(ctx context.Context, target any) (sync *SyncResult, async <-chan string, err error) {
	switch p := target.(type) {
	case SyncProducer:
		return a.Sync(p), nil, nil
	case func() (string, bool):
		return a.Sync(p), nil, nil
	case AsyncProducer:
		return nil, a.Async(ctx, p), nil
	case func(context.Context) <-chan string:
		return nil, a.Async(ctx, p), nil
	default:
		return nil, nil, ErrNotAGenerator
	}
}

// Async drives an AsyncProducer, forwarding output tokens on the returned
// channel in the adapter's yield mode. The returned channel is closed when
// producer is exhausted, ctx is cancelled, or a callback halts the stream.
func (a *Adapter) Async(ctx context.Context, producer AsyncProducer) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		sp := NewProcessor(a.registry, a.cfg.RecordHistory, a.logger)
		ck := &chunker{size: a.chunkN}
		in := producer(ctx)

		send := func(s string) bool {
			select {
			case out <- s:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			var token string
			var ok bool
			select {
			case token, ok = <-in:
			case <-ctx.Done():
				return
			}
			if !ok {
				break
			}

			var outChars []rune
			halted := false
			for _, ch := range token {
				chars, err := sp.Process(ch)
				outChars = append(outChars, chars...)
				if err != nil {
					if errors.Is(err, ErrHalted) {
						halted = true
					}
					break
				}
			}

			if a.mode == yieldToken {
				if !halted {
					outChars = append(outChars, sp.Flush()...)
				}
				if !send(string(outChars)) {
					return
				}
			} else {
				for _, item := range a.repack(ck, outChars) {
					if !send(item) {
						return
					}
				}
			}

			if halted {
				return
			}
		}

		if a.mode != yieldToken {
			rem := sp.Flush()
			for _, item := range a.repack(ck, rem) {
				if !send(item) {
					return
				}
			}
			for _, item := range ck.drain() {
				if !send(item) {
					return
				}
			}
		}
	}()
	return out
}
