// Package rules parses a flat rule-file format into corasick.Pattern values
// and builds one automaton per loaded file, the way a rule engine built
// around the corasick package would actually obtain its patterns. It is not
// a YARA-grammar implementation: no condition expressions, no modules, just
// enough syntax to name a literal, regex, or hex pattern.
package rules

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dl/acscan/internal/corasick"
)

// Kind identifies which of the three pattern shapes a Def describes.
type Kind int

const (
	KindLiteral Kind = iota
	KindRegex
	KindHex
)

// Def is one parsed rule-file entry, before it is compiled into a
// corasick.Pattern (hex bodies need mask-stream compilation; regex bodies
// need a FirstByteSet attached).
type Def struct {
	Name   string
	Kind   Kind
	Body   string
	NoCase bool
	Wide   bool
	Line   int
}

// ParseFile reads a rule-file from r, one definition per non-blank,
// non-comment line:
//
//	name = "literal text"
//	name nocase = "literal text"
//	name wide nocase = "literal text"
//	name = /regex source/
//	name = { AA BB ?? (01 02 | 03) [2-4] }
//
// "#"-prefixed lines are comments, matching the flat config-file convention
// in internal/cli/configfile.go.
func ParseFile(r io.Reader) ([]Def, error) {
	var defs []Def
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		def, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("rules: line %d: %w", lineNum, err)
		}
		def.Line = lineNum
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return defs, nil
}

func parseLine(line string) (Def, error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return Def{}, fmt.Errorf("missing '=' in %q", line)
	}
	head := strings.Fields(line[:eq])
	if len(head) == 0 {
		return Def{}, fmt.Errorf("missing rule name in %q", line)
	}

	def := Def{Name: head[0]}
	for _, mod := range head[1:] {
		switch mod {
		case "nocase":
			def.NoCase = true
		case "wide":
			def.Wide = true
		default:
			return Def{}, fmt.Errorf("unknown modifier %q", mod)
		}
	}

	body := strings.TrimSpace(line[eq+1:])
	switch {
	case strings.HasPrefix(body, `"`) && strings.HasSuffix(body, `"`) && len(body) >= 2:
		def.Kind = KindLiteral
		def.Body = body[1 : len(body)-1]
	case strings.HasPrefix(body, "/") && strings.HasSuffix(body, "/") && len(body) >= 2:
		def.Kind = KindRegex
		def.Body = body[1 : len(body)-1]
	case strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}"):
		def.Kind = KindHex
		def.Body = strings.TrimSpace(body[1 : len(body)-1])
	default:
		return Def{}, fmt.Errorf("unrecognized pattern body %q", body)
	}
	return def, nil
}

// Compile turns def into a corasick.Pattern, ready for AddPattern.
func Compile(def Def) (*corasick.Pattern, error) {
	flags := corasick.Ascii
	if def.Wide {
		flags |= corasick.Wide
	}
	if def.NoCase {
		flags |= corasick.NoCase
	}

	switch def.Kind {
	case KindLiteral:
		return &corasick.Pattern{Name: def.Name, Bytes: []byte(def.Body), Flags: flags}, nil

	case KindRegex:
		return compileRegex(def)

	case KindHex:
		str, mask, err := compileHex(def.Body)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", def.Name, err)
		}
		return &corasick.Pattern{Name: def.Name, Bytes: str, Mask: mask, Flags: corasick.Hex | flags&corasick.NoCase}, nil

	default:
		return nil, fmt.Errorf("rule %s: unknown kind", def.Name)
	}
}

// Ruleset is a compiled set of patterns together with the automaton built
// from them. Each load gets a fresh UUID so repeated scans against a
// mutating rule directory can be correlated in logs and `rules validate`
// output.
type Ruleset struct {
	ID        uuid.UUID
	Patterns  []*corasick.Pattern
	Automaton *corasick.Automaton
	Arena     *corasick.BumpArena

	// DegenerateCount is how many patterns fell back to root-attachment
	// (corasick.AddPattern returned min_token_length == 0) and are
	// therefore tried at every scan offset instead of only at token hits.
	DegenerateCount int
}

// Load parses and compiles every definition read from r into one Ruleset.
func Load(r io.Reader) (*Ruleset, error) {
	defs, err := ParseFile(r)
	if err != nil {
		return nil, err
	}

	rs := &Ruleset{ID: uuid.New()}
	arena := corasick.NewArena()
	automaton, err := corasick.CreateAutomaton(arena)
	if err != nil {
		return nil, fmt.Errorf("rules: create automaton: %w", err)
	}
	rs.Arena = arena
	rs.Automaton = automaton

	for _, def := range defs {
		pattern, err := Compile(def)
		if err != nil {
			return nil, err
		}
		minLen, err := corasick.AddPattern(arena, automaton, pattern)
		if err != nil {
			return nil, fmt.Errorf("rules: add pattern %s: %w", def.Name, err)
		}
		if minLen == 0 {
			rs.DegenerateCount++
			log.Warn("pattern has no extractable token, will be tried at every offset", "rule", def.Name, "ruleset", rs.ID)
		}
		rs.Patterns = append(rs.Patterns, pattern)
	}

	if err := corasick.CreateFailureLinks(arena, automaton); err != nil {
		return nil, fmt.Errorf("rules: create failure links: %w", err)
	}

	log.Info("ruleset loaded", "ruleset", rs.ID, "patterns", len(rs.Patterns), "degenerate", rs.DegenerateCount)
	return rs, nil
}
