// Package source provides character-range tracking over manifest source text, so
// that diagnostics can point back at the exact characters that triggered
// them regardless of which front-end produced the MIR.
package source

import "fmt"

// Span represents a contiguous, half-open slice of a source file: [Start,
// End). Offsets count runes of the decoded text, not UTF-8 bytes, matching
// how File and the DSL/KDL lexers index source. Representing a location this way (rather than as a substring) lets
// later code recover the enclosing line, highlight a range, or shift the
// span when source text is embedded inside another document.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if the range is inverted.
func NewSpan(start, end int) Span {
	if start > end {
		panic("source: invalid span")
	}

	return Span{start, end}
}

// Start returns the first rune offset covered by this span.
func (s Span) Start() int { return s.start }

// End returns one past the last rune offset covered by this span.
func (s Span) End() int { return s.end }

// Length returns the number of runes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// IsEmpty returns true when the span covers no runes.
func (s Span) IsEmpty() bool { return s.start == s.end }

// Shift translates a span by a fixed offset. Used when source text (e.g. a
// KDL child document) is reparented into another file's coordinate space.
func (s Span) Shift(offset int) Span {
	return Span{s.start + offset, s.end + offset}
}

// Union returns the smallest span enclosing both operands.
func (s Span) Union(other Span) Span {
	start, end := s.start, s.end
	if other.start < start {
		start = other.start
	}

	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

// String implements fmt.Stringer.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}
