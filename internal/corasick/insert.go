package corasick

// AddPattern walks/creates the trie path for every token
// extracted from pattern, and attaches an output record at each path's
// terminal state recording how far back from that point the pattern's own
// start lies. It returns the minimum token length observed, a signal the
// caller uses to judge how selective the pattern's entry into the automaton
// is: 0 means the degenerate case triggered and this pattern will be tried
// at every scanner offset.
//
// A pattern with no extractable token (GenerateTokens returned nil) is the
// degenerate case: it is attached directly to the root with
// backtrack 0, since nothing about it can be located via a token walk.
func AddPattern(arena Arena, automaton *Automaton, pattern *Pattern) (int, error) {
	tokens := GenerateTokens(pattern)
	if len(tokens) == 0 {
		if err := attachOutput(arena, automaton.Root, pattern, 0); err != nil {
			return 0, err
		}
		return 0, nil
	}

	minLength := tMax + 1
	for _, tok := range tokens {
		if err := addToken(arena, automaton, pattern, tok); err != nil {
			return 0, err
		}
		if tok.Length() < minLength {
			minLength = tok.Length()
		}
	}
	return minLength, nil
}

// AddLiteral inserts pattern's full byte sequence (optionally expanded into
// its ASCII case variants) as a trie key, bypassing token extraction and
// T_MAX truncation entirely. It shares trie-walking, failure-link, and
// transition-query logic with AddPattern but suits a different caller: one
// building an automaton that matches whole
// literal strings exactly — such as a grep-style multi-literal search —
// rather than this package's token-then-verify scanner use case.
func AddLiteral(arena Arena, automaton *Automaton, pattern *Pattern) (int, error) {
	variants := [][]byte{pattern.Bytes}
	if pattern.Flags.has(NoCase) {
		for _, v := range GenerateCaseVariants(Token{Bytes: pattern.Bytes}) {
			variants = append(variants, v.Bytes)
		}
	}
	for _, v := range variants {
		if err := addToken(arena, automaton, pattern, Token{Bytes: v}); err != nil {
			return 0, err
		}
	}
	return len(pattern.Bytes), nil
}

func addToken(arena Arena, automaton *Automaton, pattern *Pattern, tok Token) error {
	state := automaton.Root
	for _, b := range tok.Bytes {
		next := NextState(state, b)
		if next == nil {
			var err error
			next, err = createChild(arena, state, b)
			if err != nil {
				return err
			}
		}
		state = next
	}
	return attachOutput(arena, state, pattern, state.depth+tok.Backtrack)
}

func attachOutput(arena Arena, state *State, pattern *Pattern, backtrack int) error {
	rec, err := newOutputRecord(arena, pattern, backtrack)
	if err != nil {
		return err
	}
	rec.next = state.matches
	state.matches = rec
	return nil
}
