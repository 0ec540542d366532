// Package output carries gt's primary output: the paths, listings and JSON
// documents written to stdout for scripts and shells to consume.
// Diagnostics go through the log package on stderr instead.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
)

// Printer writes primary output.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

type ctxKey struct{}

// WithPrinter returns a context whose Printer writes to w.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext returns the context's Printer, or one writing to stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Lines writes each value of seq on its own line.
func (p *Printer) Lines(seq iter.Seq[string]) {
	for line := range seq {
		fmt.Fprintln(p.w, line)
	}
}

// JSON writes v as indented JSON. URLs are written without HTML escaping.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Writer exposes the destination for renderers that write directly.
func (p *Printer) Writer() io.Writer {
	return p.w
}
