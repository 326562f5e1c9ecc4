package hub

import "strconv"

// PagingRequestType is the type of a paging request
type PagingRequestType int

const (
	ToLineAbove       PagingRequestType = iota // ToLineAbove scrolls the view up by one line
	ToScrollPageDown                           // ToScrollPageDown scrolls the view down by one page
	ToLineBelow                                // ToLineBelow scrolls the view down by one line
	ToScrollPageUp                             // ToScrollPageUp scrolls the view up by one page
	ToScrollLeft                               // ToScrollLeft scrolls screen to the left
	ToScrollRight                              // ToScrollRight scrolls screen to the right
	ToLine                                     // ToLine makes a particular line the first one on screen
	ToScrollFirstItem                          // ToScrollFirstItem shows the first filtered line
	ToScrollLastItem                           // ToScrollLastItem shows the last filtered line
	ToScrollLines                              // ToScrollLines scrolls by an arbitrary number of lines
	ToScrollColumns                            // ToScrollColumns scrolls sideways by an arbitrary number of columns
)

var pagingRequestTypeNames = [...]string{
	"ToLineAbove",
	"ToScrollPageDown",
	"ToLineBelow",
	"ToScrollPageUp",
	"ToScrollLeft",
	"ToScrollRight",
	"ToLine",
	"ToScrollFirstItem",
	"ToScrollLastItem",
	"ToScrollLines",
	"ToScrollColumns",
}

func (prt PagingRequestType) String() string {
	if prt < 0 || int(prt) >= len(pagingRequestTypeNames) {
		return "PagingRequestType(" + strconv.Itoa(int(prt)) + ")"
	}
	return pagingRequestTypeNames[prt]
}

// PagingRequest can be sent to move the view
type PagingRequest interface {
	Type() PagingRequestType
}

// Type satisfies the PagingRequest interface for PagingRequestType itself
func (prt PagingRequestType) Type() PagingRequestType {
	return prt
}

// JumpToLineRequest is a PagingRequest that jumps to a specific line
// ordinal
type JumpToLineRequest int

// Type satisfies the PagingRequest interface
func (jlr JumpToLineRequest) Type() PagingRequestType {
	return ToLine
}

// Line returns the target line ordinal
func (jlr JumpToLineRequest) Line() int {
	return int(jlr)
}

// ScrollLinesRequest scrolls the view by a number of lines. Positive
// values scroll down, negative values scroll up.
type ScrollLinesRequest int

// Type satisfies the PagingRequest interface
func (slr ScrollLinesRequest) Type() PagingRequestType {
	return ToScrollLines
}

// Lines returns the number of lines to scroll
func (slr ScrollLinesRequest) Lines() int {
	return int(slr)
}

// ScrollColumnsRequest scrolls the view sideways by a number of
// columns. Positive values scroll right.
type ScrollColumnsRequest int

// Type satisfies the PagingRequest interface
func (scr ScrollColumnsRequest) Type() PagingRequestType {
	return ToScrollColumns
}

// Columns returns the number of columns to scroll
func (scr ScrollColumnsRequest) Columns() int {
	return int(scr)
}
