package util

import (
	"errors"
	"unicode"
)

// ContainsUpper returns true if s contains an upper case character
func ContainsUpper(s string) bool {
	for _, c := range s {
		if unicode.IsUpper(c) {
			return true
		}
	}
	return false
}

type ignorable interface {
	Ignorable() bool
}

type exitStatuser interface {
	ExitStatus() int
}

// IsIgnorableError returns true if err, or an error it wraps, reports
// itself as ignorable. Such errors end the program without being shown
// to the user.
func IsIgnorableError(err error) bool {
	var v ignorable
	if errors.As(err, &v) {
		return v.Ignorable()
	}
	return false
}

// GetExitStatus returns the exit status carried by err, if any. When
// err carries no status, 1 is returned along with false.
func GetExitStatus(err error) (int, bool) {
	var v exitStatuser
	if errors.As(err, &v) {
		return v.ExitStatus(), true
	}
	return 1, false
}
