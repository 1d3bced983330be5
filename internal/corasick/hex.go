package corasick

// GenerateHexTokens walks pattern's mask stream
// looking for the substring of literal (non-wildcard, not-inside-an-
// alternation) bytes of length up to tMax that maximises the number of
// distinct bytes among the last tMax seen, preferring the longer token on
// ties, and tracks the backtrack distance from that substring back to the
// pattern's start as it goes.
//
// Backtrack bookkeeping: stringPosition advances on every mask element
// except alternation/skip markers; backtrack advances the same way but only
// outside an alternation. A fixed-width skip (MaskExactSkip) adds its count
// to backtrack directly. A variable-width skip (MaskRangeSkip) has no
// deterministic backtrack across it, so the search stops there. Closing an
// alternation whose two sides had different lengths means the backtrack
// value would differ per alternative taken, so the search stops at the
// alternation instead of producing an ambiguous value; closing one whose
// sides agree folds the common length into backtrack.
func GenerateHexTokens(pattern *Pattern) Token {
	str := pattern.Bytes
	mask := pattern.Mask

	insideOr := false
	tokenLength := 0
	backtrack := 0
	maxUniqueBytes := 0
	candidatePos := 0
	candidateLength := 0
	candidateBacktrack := 0
	orStringLength := 0
	prevOrStringLength := 0
	stringPosition := 0

	last := make([]byte, tMax)

	i := 0
	for i < len(mask) && mask[i] != MaskEnd {
		m := mask[i]

		if tokenLength == 0 && stringPosition < len(str) {
			for k := range last {
				last[k] = str[stringPosition]
			}
		}

		if m == MaskOr {
			insideOr = true
		}
		if m == MaskOrEnd {
			insideOr = false
		}

		if m == MaskLiteral && !insideOr {
			tokenLength++
			if tokenLength > tMax {
				tokenLength = tMax
			}
			last[stringPosition%tMax] = str[stringPosition]

			uniqueBytes := 1
			for a := 0; a < tMax-1; a++ {
				unique := true
				for b := a + 1; b < tMax; b++ {
					if last[a] == last[b] {
						unique = false
						break
					}
				}
				if unique {
					uniqueBytes++
				}
			}

			if uniqueBytes > maxUniqueBytes || (uniqueBytes == maxUniqueBytes && tokenLength > candidateLength) {
				maxUniqueBytes = uniqueBytes
				candidatePos = stringPosition - tokenLength + 1
				candidateBacktrack = backtrack - tokenLength + 1
				candidateLength = tokenLength

				if candidateLength == tMax && maxUniqueBytes == tMax {
					break
				}
			}
		} else {
			tokenLength = 0
		}

		if m != MaskOr && m != MaskOrEnd && m != MaskExactSkip && m != MaskRangeSkip {
			stringPosition++
			if insideOr {
				orStringLength++
			} else {
				backtrack++
			}
		}

		if m == MaskExactSkip {
			i++
			if i < len(mask) {
				backtrack += int(mask[i])
			}
		} else if m == MaskRangeSkip {
			break
		} else if m == MaskOr || m == MaskOrEnd {
			if prevOrStringLength == 0 {
				prevOrStringLength = orStringLength
			}
			if orStringLength != prevOrStringLength {
				break
			}
			orStringLength = 0
			if m == MaskOrEnd {
				backtrack += prevOrStringLength
				prevOrStringLength = 0
			}
		}

		i++
	}

	if candidateLength == 0 {
		return Token{}
	}
	return Token{
		Backtrack: candidateBacktrack,
		Bytes:     append([]byte(nil), str[candidatePos:candidatePos+candidateLength]...),
	}
}
