package filter

import (
	"regexp"
	"strings"
)

const (
	disabledMarker = '#'
	negateMarker   = '!'
)

// NewRule creates an active, non-negated rule
func NewRule(re *regexp.Regexp) Rule {
	return Rule{Pattern: re, Active: true}
}

// Applies returns true if the rule takes part in filtering
func (r Rule) Applies() bool {
	return r.Active && r.Pattern != nil
}

// Match returns true if s passes this rule. Inactive rules never match.
func (r Rule) Match(s string) bool {
	if !r.Applies() {
		return false
	}
	return r.Pattern.MatchString(s) != r.Negate
}

// String renders the rule in the notation accepted by Parse
func (r Rule) String() string {
	var expr string
	if r.Pattern != nil {
		expr = r.Pattern.String()
	}
	return Notation(expr, r.Negate, r.Active)
}

// Notation renders a pattern and its flags as a single string: a '#'
// marks a disabled rule, a '!' marks a negated one, and a space
// separates the markers from the pattern.
func Notation(expr string, negate, active bool) string {
	var sb strings.Builder
	if !active {
		sb.WriteByte(disabledMarker)
	}
	if negate {
		sb.WriteByte(negateMarker)
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(expr)
	return sb.String()
}

// ParseNotation splits s into its pattern text and flags. A pattern
// that starts with a marker character must escape it (e.g. `\#`).
func ParseNotation(s string) (expr string, negate, active bool) {
	active = true
	i := 0
markers:
	for ; i < len(s); i++ {
		switch {
		case s[i] == disabledMarker && active:
			active = false
		case s[i] == negateMarker && !negate:
			negate = true
		default:
			break markers
		}
	}

	if i > 0 && i < len(s) && s[i] == ' ' {
		i++
	}
	return s[i:], negate, active
}

// Parse parses s in rule notation and compiles its pattern
func Parse(s string, mode CaseMode) (Rule, error) {
	expr, negate, active := ParseNotation(s)
	re, err := Compile(expr, mode)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: re, Negate: negate, Active: active}, nil
}

// ParseAll parses each of the given strings as a Rule. The first
// invalid pattern aborts parsing.
func ParseAll(list []string, mode CaseMode) ([]Rule, error) {
	rules := make([]Rule, 0, len(list))
	for _, s := range list {
		r, err := Parse(s, mode)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// CountApplied returns the number of rules that take part in filtering
func CountApplied(rules []Rule) int {
	var n int
	for _, r := range rules {
		if r.Applies() {
			n++
		}
	}
	return n
}
