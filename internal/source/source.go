// Package source loads the text that is being viewed.
package source

import (
	"context"
	"io"
	"path/filepath"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/internal/ansi"
	"golang.org/x/exp/mmap"
)

// StdinName is the path that denotes the standard input
const StdinName = "-"

// File is a loaded text along with where it came from
type File struct {
	name string
	path string
	text string
}

// Option modifies how a File is loaded
type Option func(*loadOptions)

type loadOptions struct {
	stripANSI bool
}

// WithStripANSI removes ANSI escape sequences (e.g. colors) from the
// loaded text
func WithStripANSI(b bool) Option {
	return func(o *loadOptions) {
		o.stripANSI = b
	}
}

func newFile(name, path, text string, options []Option) *File {
	var o loadOptions
	for _, opt := range options {
		opt(&o)
	}
	if o.stripANSI {
		text = ansi.Strip(text)
	}
	return &File{name: name, path: path, text: text}
}

// Load maps the file at path into memory and copies its contents
// into a File. The mapping is released before Load returns.
func Load(ctx context.Context, path string, options ...Option) (*File, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("source.Load %s", path)
		defer g.End()
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load file")
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file '%s'", path)
	}
	defer r.Close()

	buf := make([]byte, r.Len())
	if len(buf) > 0 {
		if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "failed to read file '%s'", path)
		}
	}

	return newFile(filepath.Base(path), path, string(buf), options), nil
}

// Read reads everything from in. name is used as the display name.
func Read(ctx context.Context, name string, in io.Reader, options ...Option) (*File, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("source.Read %s", name)
		defer g.End()
	}

	type result struct {
		buf []byte
		err error
	}

	ch := make(chan result, 1)
	go func() {
		buf, err := io.ReadAll(in)
		ch <- result{buf: buf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "failed to read input")
	case res := <-ch:
		if res.err != nil {
			return nil, errors.Wrapf(res.err, "failed to read from %s", name)
		}
		return newFile(name, StdinName, string(res.buf), options), nil
	}
}

// Name returns the base name of the file, for display
func (f *File) Name() string {
	return f.name
}

// Path returns the path the file was loaded from
func (f *File) Path() string {
	return f.path
}

// Text returns the contents of the file
func (f *File) Text() string {
	return f.text
}
