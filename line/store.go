package line

import "strings"

// NewStore creates a Store from the given text. Lines are terminated by
// "\n" or "\r\n". A terminator at the end of the text does not start a
// new, empty line, so an empty text has no lines at all.
func NewStore(text string) *Store {
	n := strings.Count(text, "\n")
	if len(text) > 0 && text[len(text)-1] != '\n' {
		n++
	}

	s := &Store{
		buf:    text,
		starts: make([]int, 0, n),
		ends:   make([]int, 0, n),
	}

	for pos := 0; pos < len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		next := len(text)
		stop := len(text)
		if end >= 0 {
			end += pos
			next = end + 1
			stop = end
			if stop > pos && text[stop-1] == '\r' {
				stop--
			}
		}
		s.starts = append(s.starts, pos)
		s.ends = append(s.ends, stop)
		pos = next
	}
	return s
}

// Len returns the number of lines in the store
func (s *Store) Len() int {
	return len(s.starts)
}

// At returns the contents of line n. The second return value is false
// if n is out of range.
func (s *Store) At(n int) (string, bool) {
	if n < 0 || n >= len(s.starts) {
		return "", false
	}
	return s.buf[s.starts[n]:s.ends[n]], true
}

// Line returns line n as a Line value
func (s *Store) Line(n int) (Line, bool) {
	v, ok := s.At(n)
	if !ok {
		return Line{}, false
	}
	return Line{ordinal: n, text: v}, true
}

// Size returns the size of the underlying buffer in bytes
func (s *Store) Size() int {
	return len(s.buf)
}

// Ordinal returns the position of this line in the original file
func (l Line) Ordinal() int {
	return l.ordinal
}

// Text returns the raw contents of the line, without the terminator
func (l Line) Text() string {
	return l.text
}
