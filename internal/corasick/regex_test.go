package corasick

import "testing"

func TestGenerateRegexTokens(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		want    []string
	}{
		{
			// c* makes c optional, so accumulation stops at "ab".
			name:    "quantifier stops accumulation",
			pattern: Pattern{Bytes: []byte("^abc*def"), Flags: Regexp},
			want:    []string{"ab"},
		},
		{
			name:    "no leading anchor",
			pattern: Pattern{Bytes: []byte("abc"), Flags: Regexp},
			want:    []string{"abc"},
		},
		{
			name:    "escaped metacharacter contributes a literal",
			pattern: Pattern{Bytes: []byte(`\.exe`), Flags: Regexp},
			want:    []string{".exe"},
		},
		{
			name:    "truncates at tMax",
			pattern: Pattern{Bytes: []byte("abcdef"), Flags: Regexp},
			want:    []string{"abcd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRegexTokens(&tt.pattern)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if string(got[i].Bytes) != w {
					t.Errorf("token %d = %q, want %q", i, got[i].Bytes, w)
				}
				if got[i].Backtrack != 0 {
					t.Errorf("token %d backtrack = %d, want 0", i, got[i].Backtrack)
				}
			}
		})
	}
}

func TestGenerateRegexTokens_NoCaseExpands(t *testing.T) {
	p := Pattern{Bytes: []byte("hi"), Flags: Regexp | NoCase}
	got := GenerateRegexTokens(&p)
	want := []string{"hi", "hI", "Hi", "HI"}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	if string(got[0].Bytes) != "hi" {
		t.Errorf("first token = %q, want original %q", got[0].Bytes, "hi")
	}
}

func TestGenerateRegexTokens_FallsBackToFirstBytes(t *testing.T) {
	p := Pattern{Bytes: []byte(".*"), Flags: Regexp, Regex: fixedFirstBytes{0x41, 0x61}}
	got := GenerateRegexTokens(&p)
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(got), got)
	}
	if got[0].Bytes[0] != 0x41 || got[1].Bytes[0] != 0x61 {
		t.Errorf("got %v, want first-byte tokens 0x41,0x61", got)
	}
}

func TestGenerateRegexTokens_NoLiteralsNoFirstBytes(t *testing.T) {
	p := Pattern{Bytes: []byte(".*"), Flags: Regexp}
	if got := GenerateRegexTokens(&p); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

type fixedFirstBytes []byte

func (f fixedFirstBytes) FirstBytes() []byte { return f }
