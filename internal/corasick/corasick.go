// Package corasick implements the token-indexed Aho-Corasick automaton at
// the heart of a multi-pattern scanner: given a rule set containing plain
// strings, case-insensitive strings, wide (UTF-16LE) strings, hex patterns
// with wildcards/alternations/skips, and regular expressions, it builds one
// automaton keyed by short anchoring tokens extracted from each pattern, so
// a single linear sweep over input data can locate candidate offsets where
// each full pattern must then be verified by the caller.
//
// The automaton itself never verifies a full pattern match; it only yields
// (pattern, backtrack) pairs via output chains attached to states, leaving
// verification and scanning to the surrounding system. Building an automaton
// (AddPattern, CreateFailureLinks) is single-threaded and must complete
// before the automaton is queried; once failure links are built, NextState
// and the output chains are read-only and safe for concurrent scanners.
package corasick

import "errors"

// ErrInsufficientMemory is returned by any operation that fails to allocate
// from the Arena. It is the only error kind the core reports: anything else
// (empty patterns, non-extractable tokens, variable-width skips, asymmetric
// alternations) degrades gracefully instead of failing.
var ErrInsufficientMemory = errors.New("corasick: insufficient memory")

// tMax bounds token length: a token is a short byte sequence guaranteed to
// appear verbatim in any data matching the pattern it was extracted from.
const tMax = 4

// dMax is the depth threshold below which states use a dense (256-entry)
// transition table; deeper states use a sparse linked list of transitions.
// With dMax == 1 only the root's direct children are dense.
const dMax = 1
