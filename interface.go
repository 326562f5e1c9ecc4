// Package sherlog implements the indexing and query engine of an
// interactive log viewer: filtering lines by regular expressions,
// searching, highlighting, and reading windows of the filtered lines
// in either direction.
package sherlog

import (
	"regexp"

	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/line"
	"github.com/sherlog/sherlog/search"
	"github.com/sherlog/sherlog/text"
)

// Unbounded can be passed as the count to GetLines and GetLinesRev to
// read every available line
const Unbounded = -1

// Engine holds a loaded text and the indices derived from it. The
// filtered and search indices are rebuilt in full whenever the rules or
// the search pattern change.
//
// An Engine is not safe for concurrent use. Callers must serialize
// mutations and queries.
type Engine struct {
	lines     *line.Store
	rules     []filter.Rule
	filtered  *filter.Index
	search    *regexp.Regexp
	searchIdx *search.Index
	highlight *regexp.Regexp
}

// Window is a run of filtered lines, always in ascending ordinal order
type Window []text.Line
