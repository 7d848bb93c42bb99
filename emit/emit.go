// Package emit provides the append-only text sink every generator handler
// writes to, and the sinks that turn named artifacts into files or memory.
package emit

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Context is the append capability handed to emission code. Handlers never
// see where the text ends up.
type Context interface {
	// Write appends s.
	Write(s string)
	// WriteLine appends s followed by a newline.
	WriteLine(s string)
}

// Fragment is deferred output: a piece of generated code that is written
// when its parent decides where it goes.
type Fragment func(Context)

// Text returns a Fragment writing s verbatim.
func Text(s string) Fragment {
	return func(ctx Context) { ctx.Write(s) }
}

// Textf returns a Fragment writing a formatted string.
func Textf(format string, args ...any) Fragment {
	return Text(fmt.Sprintf(format, args...))
}

// Join returns a Fragment writing each part separated by sep.
func Join(parts []Fragment, sep string) Fragment {
	return func(ctx Context) {
		for i, p := range parts {
			if i > 0 {
				ctx.Write(sep)
			}
			p(ctx)
		}
	}
}

// Seq returns a Fragment writing parts back to back.
func Seq(parts ...Fragment) Fragment {
	return Join(parts, "")
}

// String renders a Fragment into a string.
func String(f Fragment) string {
	var b Buffer
	f(&b)
	return b.String()
}

// Buffer is an in-memory Context.
type Buffer struct {
	b strings.Builder
}

// Write implements Context.
func (b *Buffer) Write(s string) { b.b.WriteString(s) }

// WriteLine implements Context.
func (b *Buffer) WriteLine(s string) {
	b.b.WriteString(s)
	b.b.WriteByte('\n')
}

// String returns everything written so far.
func (b *Buffer) String() string { return b.b.String() }

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte { return []byte(b.b.String()) }

var _ Context = (*Buffer)(nil)

// fileContext buffers writes to a file and remembers the first error so
// emission code does not have to check every call.
type fileContext struct {
	w   *bufio.Writer
	err error
}

func (f *fileContext) Write(s string) {
	if f.err != nil {
		return
	}
	_, f.err = f.w.WriteString(s)
}

func (f *fileContext) WriteLine(s string) {
	f.Write(s)
	f.Write("\n")
}

// ReadableByAll is the permission mode for generated source files.
const ReadableByAll os.FileMode = 0o644

// WithFile creates (or truncates) path, runs fn with a Context writing to it,
// then flushes and closes the file whatever fn returned. The first error from
// fn, a write, the flush or the close is returned.
func WithFile(path string, fn func(Context) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, ReadableByAll)
	if err != nil {
		return fmt.Errorf("emit: opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("emit: closing %s: %w", path, cerr)
		}
	}()

	ctx := &fileContext{w: bufio.NewWriter(f)}
	if err := fn(ctx); err != nil {
		return err
	}
	if ctx.err != nil {
		return fmt.Errorf("emit: writing %s: %w", path, ctx.err)
	}
	if err := ctx.w.Flush(); err != nil {
		return fmt.Errorf("emit: flushing %s: %w", path, err)
	}
	return nil
}

// Indent returns a Fragment writing f with prefix at the start of every
// non-empty line.
func Indent(f Fragment, prefix string) Fragment {
	return func(ctx Context) {
		f(&indentContext{ctx: ctx, prefix: prefix, lineStart: true})
	}
}

type indentContext struct {
	ctx       Context
	prefix    string
	lineStart bool
}

func (c *indentContext) Write(s string) {
	for s != "" {
		i := strings.IndexByte(s, '\n')
		line := s
		if i >= 0 {
			line = s[:i]
		}
		if line != "" && c.lineStart {
			c.ctx.Write(c.prefix)
		}
		c.ctx.Write(line)
		if i < 0 {
			c.lineStart = false
			return
		}
		c.ctx.Write("\n")
		c.lineStart = true
		s = s[i+1:]
	}
}

func (c *indentContext) WriteLine(s string) {
	c.Write(s)
	c.Write("\n")
}
