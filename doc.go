// Package streamfilter implements a streaming keyword-match text filter.
//
// It intercepts a character-at-a-time token stream (typically produced
// incrementally by an LLM inference endpoint) and rewrites it on the fly
// according to a set of registered keyword rules, using a multi-pattern
// Aho-Corasick-style automaton with failure links and a bounded-lookahead
// buffer so output can be emitted while upstream production is still in
// progress.
package streamfilter
