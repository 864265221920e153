package streamfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sf "github.com/devoprohan/streamfilter"
)

func TestDecisionHelpers(t *testing.T) {
	assert.Equal(t, sf.Decision{Type: sf.Pass}, sf.PassDecision())
	assert.Equal(t, sf.Decision{Type: sf.Drop}, sf.DropDecision())
	assert.Equal(t, sf.Decision{Type: sf.Replace, Replacement: "x"}, sf.ReplaceDecision("x"))
	assert.Equal(t, sf.Decision{Type: sf.Halt}, sf.HaltDecision())
	assert.Equal(t, sf.Decision{Type: sf.ContinueDrop}, sf.ContinueDropDecision())
	assert.Equal(t, sf.Decision{Type: sf.ContinuePass}, sf.ContinuePassDecision())
}
