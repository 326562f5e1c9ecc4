package line

// Line is a single line of the loaded text, identified by its ordinal:
// the 0-based position in the original file. Lines are immutable.
type Line struct {
	ordinal int
	text    string
}

// Store owns the text of a loaded file and the offsets of each line
// within it. Accessing a line never copies its contents.
type Store struct {
	buf    string
	starts []int
	ends   []int
}
