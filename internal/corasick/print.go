package corasick

import (
	"fmt"
	"io"
)

// PrintAutomaton writes a human-readable dump of automaton to w, one line
// per state: its address, depth, failure target, and output chain (which,
// after CreateFailureLinks, includes the outputs merged in from its failure
// target). It
// exists for debugging trie/failure-link construction, never for scanning.
func PrintAutomaton(w io.Writer, automaton *Automaton) {
	printState(w, automaton.Root, automaton.Root, 0)
}

func printState(w io.Writer, s, root *State, indent int) {
	for i := 0; i < indent; i++ {
		fmt.Fprint(w, " ")
	}
	fmt.Fprintf(w, "%p (%d) -> %p", s, s.depth, s.failure)
	for m := s.matches; m != nil; m = m.next {
		fmt.Fprintf(w, " [ %s:%d ]", m.pattern.Name, m.backtrack)
	}
	fmt.Fprintln(w)

	it := newChildIter(s)
	for b, t, ok := it.Next(); ok; b, t, ok = it.Next() {
		_ = b
		printState(w, t, root, indent+2)
	}
}
