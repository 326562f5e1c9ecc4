// Package text decomposes lines into plain and highlighted spans for
// display.
package text

import (
	"regexp"
	"strings"
)

// Kind tells how a Span should be displayed
type Kind int

const (
	Raw Kind = iota
	Highlight
)

func (k Kind) String() string {
	switch k {
	case Raw:
		return "Raw"
	case Highlight:
		return "Highlight"
	default:
		return "Unknown"
	}
}

// Span is a contiguous part of a line, as byte offsets [Start, End)
// into the line's content
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Line is a line prepared for display: its ordinal, its content, and
// the spans that partition the content
type Line struct {
	Ordinal int
	Content string
	Spans   []Span
}

// Segment is the content of a Span together with its kind
type Segment struct {
	Text string
	Kind Kind
}

// Len returns the length of the span in bytes
func (s Span) Len() int {
	return s.End - s.Start
}

// New creates a Line, decorating s with highlight
func New(ordinal int, s string, highlight *regexp.Regexp) Line {
	return Line{
		Ordinal: ordinal,
		Content: s,
		Spans:   Decorate(s, highlight),
	}
}

// Decorate splits s into spans. Without a highlight pattern the whole
// line is a single Raw span. Otherwise each non-overlapping, non-empty
// match becomes a Highlight span, and the text between them becomes
// Raw spans. Empty Raw spans are omitted, except for the single span
// of an empty line.
func Decorate(s string, highlight *regexp.Regexp) []Span {
	whole := []Span{{Start: 0, End: len(s), Kind: Raw}}
	if highlight == nil {
		return whole
	}

	locs := highlight.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return whole
	}

	spans := make([]Span, 0, 2*len(locs)+1)
	pos := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start == end {
			continue
		}
		if start > pos {
			spans = append(spans, Span{Start: pos, End: start, Kind: Raw})
		}
		spans = append(spans, Span{Start: start, End: end, Kind: Highlight})
		pos = end
	}

	if pos < len(s) {
		spans = append(spans, Span{Start: pos, End: len(s), Kind: Raw})
	}

	if len(spans) == 0 {
		return whole
	}
	return spans
}

// Text returns the content of the i-th span
func (l Line) Text(i int) string {
	sp := l.Spans[i]
	return l.Content[sp.Start:sp.End]
}

// Segments returns the spans of the line along with their content
func (l Line) Segments() []Segment {
	segs := make([]Segment, len(l.Spans))
	for i, sp := range l.Spans {
		segs[i] = Segment{Text: l.Content[sp.Start:sp.End], Kind: sp.Kind}
	}
	return segs
}

// String reassembles the line from its spans
func (l Line) String() string {
	var sb strings.Builder
	sb.Grow(len(l.Content))
	for _, sp := range l.Spans {
		sb.WriteString(l.Content[sp.Start:sp.End])
	}
	return sb.String()
}

// HasHighlight returns true if any part of the line is highlighted
func (l Line) HasHighlight() bool {
	for _, sp := range l.Spans {
		if sp.Kind == Highlight {
			return true
		}
	}
	return false
}
