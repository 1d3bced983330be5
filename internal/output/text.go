package output

import (
	"fmt"
	"strconv"

	"github.com/dl/acscan/internal/matcher"
)

// TextFormatter formats results as human-readable text with optional color.
type TextFormatter struct {
	styles      Styles
	lineNumbers bool
	countOnly   bool
	filesOnly   bool
	useColor    bool
	maxColumns  int
}

// NewTextFormatter creates a TextFormatter. maxColumns, when > 0, windows each
// matched line to at most that many bytes, centered on the line's first
// highlighted position.
func NewTextFormatter(lineNumbers, countOnly, filesOnly, useColor bool, maxColumns int) *TextFormatter {
	styles := NoStyles()
	if useColor {
		styles = NewStyles()
	}
	return &TextFormatter{
		styles:      styles,
		lineNumbers: lineNumbers,
		countOnly:   countOnly,
		filesOnly:   filesOnly,
		useColor:    useColor,
		maxColumns:  maxColumns,
	}
}

func (f *TextFormatter) Format(buf []byte, result Result, multiFile bool) []byte {
	ms := result.MatchSet

	if f.filesOnly {
		if len(ms.Matches) > 0 {
			return append(buf, append([]byte(result.FilePath), '\n')...)
		}
		return buf
	}

	if f.countOnly {
		count := result.Count()
		if multiFile {
			return append(buf, []byte(fmt.Sprintf("%s:%d\n", result.FilePath, count))...)
		}
		return append(buf, []byte(strconv.Itoa(count)+"\n")...)
	}

	for i := range ms.Matches {
		buf = f.formatLine(buf, result.FilePath, &ms, i, multiFile)
	}
	return buf
}

func (f *TextFormatter) formatLine(buf []byte, filePath string, ms *matcher.MatchSet, i int, multiFile bool) []byte {
	m := ms.Matches[i]

	// Filename prefix
	if multiFile {
		if f.useColor {
			buf = append(buf, f.styles.Filename.Render(filePath)...)
		} else {
			buf = append(buf, filePath...)
		}
		sep := ":"
		if m.IsContext {
			sep = "-"
		}
		if f.useColor {
			buf = append(buf, f.styles.Separator.Render(sep)...)
		} else {
			buf = append(buf, sep...)
		}
	}

	// Line number
	if f.lineNumbers {
		numStr := strconv.Itoa(m.LineNum)
		if f.useColor {
			buf = append(buf, f.styles.LineNum.Render(numStr)...)
		} else {
			buf = append(buf, numStr...)
		}
		sep := ":"
		if m.IsContext {
			sep = "-"
		}
		if f.useColor {
			buf = append(buf, f.styles.Separator.Render(sep)...)
		} else {
			buf = append(buf, sep...)
		}
	}

	// Line content with match highlighting
	line := ms.LineBytes(i)
	positions := ms.MatchPositions(i)
	if f.maxColumns > 0 {
		line, positions = windowLine(line, positions, f.maxColumns)
	}

	if f.useColor && len(positions) > 0 {
		buf = f.highlightMatches(buf, line, positions)
	} else {
		buf = append(buf, line...)
	}

	buf = append(buf, '\n')
	return buf
}

// windowLine clips line to at most maxColumns bytes, centered on the first
// entry of positions (or the line's own center, absent any position), and
// translates positions into the clipped window's coordinate space.
func windowLine(line []byte, positions [][2]int, maxColumns int) ([]byte, [][2]int) {
	if len(line) <= maxColumns {
		return line, positions
	}

	center := len(line) / 2
	if len(positions) > 0 {
		center = (positions[0][0] + positions[0][1]) / 2
	}

	start := center - maxColumns/2
	if start < 0 {
		start = 0
	}
	end := start + maxColumns
	if end > len(line) {
		end = len(line)
		start = end - maxColumns
		if start < 0 {
			start = 0
		}
	}

	windowed := line[start:end]
	if len(positions) == 0 {
		return windowed, nil
	}

	adjusted := make([][2]int, 0, len(positions))
	for _, pos := range positions {
		s, e := pos[0]-start, pos[1]-start
		if e <= 0 || s >= len(windowed) {
			continue
		}
		if s < 0 {
			s = 0
		}
		if e > len(windowed) {
			e = len(windowed)
		}
		adjusted = append(adjusted, [2]int{s, e})
	}
	return windowed, adjusted
}

func (f *TextFormatter) highlightMatches(buf []byte, line []byte, positions [][2]int) []byte {
	prev := 0
	for _, pos := range positions {
		start, end := pos[0], pos[1]
		if start > len(line) {
			break
		}
		if end > len(line) {
			end = len(line)
		}
		if start > prev {
			buf = append(buf, line[prev:start]...)
		}
		buf = append(buf, f.styles.Match.Render(string(line[start:end]))...)
		prev = end
	}
	if prev < len(line) {
		buf = append(buf, line[prev:]...)
	}
	return buf
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)
