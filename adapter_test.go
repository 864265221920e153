package streamfilter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sf "github.com/devoprohan/streamfilter"
)

func sliceProducer(tokens []string) sf.SyncProducer {
	i := 0
	return func() (string, bool) {
		if i >= len(tokens) {
			return "", false
		}
		tok := tokens[i]
		i++
		return tok, true
	}
}

func drain(t *testing.T, p sf.SyncProducer) []string {
	t.Helper()
	var out []string
	for {
		tok, ok := p()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestAdapterTokenMode(t *testing.T) {
	reg := sf.NewRegistry(nil)
	reg.Register("foo", decision(sf.ReplaceDecision("bar")))
	reg.Register("bad", decision(sf.DropDecision()))

	a, err := sf.NewAdapter(reg, sf.Config{YieldMode: "token"}, nil)
	require.NoError(t, err)

	result := a.Sync(sliceProducer([]string{"foo", "ok", "bad", "end"}))
	out := drain(t, result.Next)
	assert.Equal(t, []string{"bar", "ok", "", "end"}, out)
}

func TestAdapterCharModeReproducesTokenModeConcatenation(t *testing.T) {
	reg := sf.NewRegistry(nil)
	reg.Register("foo", decision(sf.ReplaceDecision("bar")))
	reg.Register("bad", decision(sf.DropDecision()))

	a, err := sf.NewAdapter(reg, sf.Config{YieldMode: "char"}, nil)
	require.NoError(t, err)

	result := a.Sync(sliceProducer([]string{"foookbadend"}))
	out := drain(t, result.Next)
	assert.Equal(t, "barokend", joinAll(out))
}

func TestAdapterChunkMode(t *testing.T) {
	reg := sf.NewRegistry(nil)
	a, err := sf.NewAdapter(reg, sf.Config{YieldMode: "chunk:3"}, nil)
	require.NoError(t, err)

	result := a.Sync(sliceProducer([]string{"abcdefg"}))
	out := drain(t, result.Next)
	assert.Equal(t, []string{"abc", "def", "g"}, out)
}

func TestAdapterInvalidYieldMode(t *testing.T) {
	reg := sf.NewRegistry(nil)
	_, err := sf.NewAdapter(reg, sf.Config{YieldMode: "bogus"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sf.ErrInvalidYieldMode)

	_, err = sf.NewAdapter(reg, sf.Config{YieldMode: "chunk:0"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sf.ErrInvalidYieldMode)
}

func TestAdapterHaltStopsConsumingProducer(t *testing.T) {
	reg := sf.NewRegistry(nil)
	reg.Register("stop", decision(sf.HaltDecision()))

	a, err := sf.NewAdapter(reg, sf.Config{YieldMode: "char"}, nil)
	require.NoError(t, err)

	producer := sliceProducer([]string{"hello ", "stop", " world"})
	result := a.Sync(producer)
	out := drain(t, result.Next)
	// maxLen is 4 ("stop"), so the bounded buffer holds back the last 4
	// characters at all times; by the time "stop" matches and halts the
	// stream, the trailing space before it is still buffered and is
	// never flushed (halt skips flush).
	assert.Equal(t, "hello", joinAll(out))
	assert.ErrorIs(t, result.Err(), sf.ErrHalted)
}

func TestAdapterAsyncCharMode(t *testing.T) {
	reg := sf.NewRegistry(nil)
	reg.Register("x", decision(sf.ContinueDropDecision()))
	reg.Register("z", decision(sf.ContinuePassDecision()))

	a, err := sf.NewAdapter(reg, sf.Config{YieldMode: "char"}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	producer := func(ctx context.Context) <-chan string {
		ch := make(chan string, 1)
		go func() {
			defer close(ch)
			select {
			case ch <- "axxxzb":
			case <-ctx.Done():
			}
		}()
		return ch
	}

	var out string
	for s := range a.Async(ctx, producer) {
		out += s
	}
	assert.Equal(t, "azb", out)
}

func joinAll(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}
