package filter

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/internal/util"
)

const maxCompileCacheSize = 100

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern '%s': %s", e.Pattern, e.err)
}

// Cause returns the underlying compile error
func (e *InvalidPatternError) Cause() error {
	return e.err
}

func (e *InvalidPatternError) Unwrap() error {
	return e.err
}

// Reason returns the compiler's description of what is wrong with the
// pattern, without the pattern itself
func (e *InvalidPatternError) Reason() string {
	var rerr *syntax.Error
	if errors.As(e.err, &rerr) {
		return string(rerr.Code) + ": `" + rerr.Expr + "`"
	}
	return e.err.Error()
}

// IsInvalidPattern returns true if err (or any error it wraps) is an
// InvalidPatternError
func IsInvalidPattern(err error) bool {
	var perr *InvalidPatternError
	return errors.As(err, &perr)
}

func (m CaseMode) String() string {
	switch m {
	case CaseSensitive:
		return "sensitive"
	case IgnoreCase:
		return "ignore"
	case SmartCase:
		return "smart"
	default:
		return fmt.Sprintf("CaseMode(%d)", int(m))
	}
}

// ParseCaseMode converts the textual name of a case mode into a CaseMode.
// An empty string yields CaseSensitive.
func ParseCaseMode(s string) (CaseMode, error) {
	switch strings.ToLower(s) {
	case "", "sensitive", "casesensitive":
		return CaseSensitive, nil
	case "ignore", "ignorecase", "insensitive":
		return IgnoreCase, nil
	case "smart", "smartcase":
		return SmartCase, nil
	}
	return CaseSensitive, errors.Errorf("unknown case mode '%s'", s)
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the
// JSON, YAML and TOML decoders)
func (m *CaseMode) UnmarshalText(b []byte) error {
	v, err := ParseCaseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (m CaseMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalFlag implements go-flags Unmarshaler (used by CLI flag parsing)
func (m *CaseMode) UnmarshalFlag(s string) error {
	return m.UnmarshalText([]byte(s))
}

func (m CaseMode) flags(q string) []string {
	switch m {
	case IgnoreCase:
		return []string{"i"}
	case SmartCase:
		if util.ContainsUpper(q) {
			return nil
		}
		return []string{"i"}
	}
	return nil
}

// Compile compiles expr as a regular expression, applying the flags
// required by mode. Syntax errors are reported as *InvalidPatternError.
func Compile(expr string, mode CaseMode) (*regexp.Regexp, error) {
	reTxt := expr
	if flags := mode.flags(expr); len(flags) > 0 {
		reTxt = fmt.Sprintf("(?%s)%s", strings.Join(flags, ""), reTxt)
	}

	re, err := regexp.Compile(reTxt)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: expr, err: err}
	}
	return re, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(expr string, mode CaseMode) *regexp.Regexp {
	re, err := Compile(expr, mode)
	if err != nil {
		panic(err)
	}
	return re
}

// NewCompiler creates a Compiler whose cached entries expire after
// they have not been used for threshold
func NewCompiler(threshold time.Duration) *Compiler {
	return &Compiler{
		compiled:  make(map[compileKey]compiledPattern),
		threshold: threshold,
	}
}

// Compile works like the package level Compile, but reuses recently
// compiled expressions
func (c *Compiler) Compile(expr string, mode CaseMode) (*regexp.Regexp, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := compileKey{text: expr, mode: mode}
	if cp, ok := c.compiled[key]; ok {
		if time.Since(cp.lastUsed) < c.threshold {
			cp.lastUsed = time.Now()
			c.compiled[key] = cp
			return cp.re, nil
		}
		delete(c.compiled, key)
	}

	re, err := Compile(expr, mode)
	if err != nil {
		return nil, err
	}

	if len(c.compiled) >= maxCompileCacheSize {
		now := time.Now()
		for k, v := range c.compiled {
			if now.Sub(v.lastUsed) >= c.threshold {
				delete(c.compiled, k)
			}
		}
		// Still full: nothing was stale, start over
		if len(c.compiled) >= maxCompileCacheSize {
			c.compiled = make(map[compileKey]compiledPattern)
		}
	}

	c.compiled[key] = compiledPattern{re: re, lastUsed: time.Now()}
	return re, nil
}

// Len returns the number of cached expressions
func (c *Compiler) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.compiled)
}
