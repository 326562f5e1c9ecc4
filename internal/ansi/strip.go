// Package ansi removes terminal escape sequences from log text, so that
// colored output of other programs can be viewed as plain text.
package ansi

import "strings"

const (
	esc = '\x1b'
	bel = '\x07'
)

// Strip returns s without CSI sequences (colors, cursor movement),
// OSC sequences (window titles, hyperlinks) and other two byte escapes.
// Line breaks are never removed: a sequence that is cut short by one
// is dropped up to the line break.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != esc {
			j := strings.IndexByte(s[i:], esc)
			if j < 0 {
				out.WriteString(s[i:])
				break
			}
			out.WriteString(s[i : i+j])
			i += j
			continue
		}
		i = skipSequence(s, i)
	}
	return out.String()
}

// skipSequence returns the position right after the escape sequence
// starting at s[i]
func skipSequence(s string, i int) int {
	if i+1 >= len(s) {
		return len(s)
	}

	switch c := s[i+1]; {
	case c == '[':
		return skipCSI(s, i+2)
	case c == ']':
		return skipOSC(s, i+2)
	case c >= 0x40 && c <= 0x7e:
		return i + 2
	default:
		// lone ESC
		return i + 1
	}
}

// skipCSI skips parameter and intermediate bytes up to and including
// the final byte
func skipCSI(s string, j int) int {
	for j < len(s) && s[j] >= 0x20 && s[j] <= 0x3f {
		j++
	}
	if j < len(s) && s[j] >= 0x40 && s[j] <= 0x7e {
		return j + 1
	}
	return j
}

// skipOSC skips up to and including the BEL or ST (ESC \) terminator
func skipOSC(s string, j int) int {
	for ; j < len(s); j++ {
		switch s[j] {
		case bel:
			return j + 1
		case '\n':
			return j
		case esc:
			if j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
			return j
		}
	}
	return j
}
