package corasick

import (
	"bytes"
	"testing"
)

func TestGenerateHexTokens(t *testing.T) {
	tests := []struct {
		name          string
		str           []byte
		mask          []byte
		wantBytes     []byte
		wantBacktrack int
	}{
		{
			// 98 56 ?? ?? 34 EB 45 97 21 - the run after the two wildcards
			// reaches 4 distinct bytes with its first 4-byte window
			// 34 EB 45 97, so the search stops there, before 21.
			name:          "literal run after wildcard gap",
			str:           []byte{0x98, 0x56, 0x00, 0x00, 0x34, 0xEB, 0x45, 0x97, 0x21},
			mask:          []byte{MaskLiteral, MaskLiteral, 0x00, 0x00, MaskLiteral, MaskLiteral, MaskLiteral, MaskLiteral, MaskLiteral, MaskEnd},
			wantBytes:     []byte{0x34, 0xEB, 0x45, 0x97},
			wantBacktrack: 4,
		},
		{
			name:          "homogeneous run prefers the earlier higher-uniqueness window",
			str:           []byte{0x98, 0x56, 0x00, 0x11, 0x11, 0x11, 0x11},
			mask:          []byte{MaskLiteral, MaskLiteral, 0x00, MaskLiteral, MaskLiteral, MaskLiteral, MaskLiteral, MaskEnd},
			wantBytes:     []byte{0x98, 0x56},
			wantBacktrack: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pattern{Bytes: tt.str, Mask: tt.mask, Flags: Hex}
			got := GenerateHexTokens(p)
			if !bytes.Equal(got.Bytes, tt.wantBytes) {
				t.Errorf("token bytes = % X, want % X", got.Bytes, tt.wantBytes)
			}
			if got.Backtrack != tt.wantBacktrack {
				t.Errorf("backtrack = %d, want %d", got.Backtrack, tt.wantBacktrack)
			}
		})
	}
}

// Asymmetric alternation: the two alternatives have different lengths (1
// byte vs 2), so the search must stop at the alternation boundary. Since
// the alternation is the very first element, nothing precedes it and the
// hex token search yields the degenerate empty token.
func TestGenerateHexTokens_AsymmetricAlternationDegenerates(t *testing.T) {
	// (01 | 02 03) 99 AA BB CC - a MASK_OR both opens the alternation and
	// separates each alternative from the next, so "01" and "02 03" are
	// each preceded by MASK_OR.
	p := &Pattern{
		Bytes: []byte{0x01, 0x02, 0x03, 0x99, 0xAA, 0xBB, 0xCC},
		Mask: []byte{
			MaskOr, MaskLiteral,
			MaskOr, MaskLiteral, MaskLiteral,
			MaskOrEnd,
			MaskLiteral, MaskLiteral, MaskLiteral, MaskLiteral,
			MaskEnd,
		},
		Flags: Hex,
	}
	got := GenerateHexTokens(p)
	if got.Length() != 0 {
		t.Errorf("token = % X, want empty (degenerate)", got.Bytes)
	}
}

func TestGenerateTokens_HexDegenerateReturnsNil(t *testing.T) {
	p := &Pattern{
		Bytes: []byte{0x01, 0x02, 0x03},
		Mask:  []byte{MaskOr, MaskLiteral, MaskOr, MaskLiteral, MaskLiteral, MaskOrEnd, MaskEnd},
		Flags: Hex,
	}
	if got := GenerateTokens(p); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
