// Package debugsink implements the `debug` statement's side-effect output
// (spec §4.4, §6: "debug sink"). It is a side channel, never part of the
// program's evaluated result, mirroring the teacher's PrintValue in
// internal/vm/value.go.
package debugsink

import (
	"fmt"
	"io"

	"github.com/kr/pretty"

	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/value"
)

// Sink receives one rendered value per `debug` statement executed.
type Sink interface {
	Print(loc srcloc.Location, v value.Value)
}

// Writer renders every debug value to w using github.com/kr/pretty's
// struct-aware formatter, prefixed with the statement's source location so
// multi-debug programs stay traceable (spec §6).
type Writer struct {
	W io.Writer
}

func NewWriter(w io.Writer) Writer { return Writer{W: w} }

func (d Writer) Print(loc srcloc.Location, v value.Value) {
	fmt.Fprintf(d.W, "[debug %s] %# v\n", loc, pretty.Formatter(v))
}

// Discard drops every debug value, for evaluation contexts that do not
// care about the side channel (e.g. the transpiler's dry lowering pass).
type Discard struct{}

func (Discard) Print(srcloc.Location, value.Value) {}

// Collector accumulates rendered debug lines in order, for tests that
// assert on exact debug output without capturing stdout.
type Collector struct {
	Lines []string
}

func (c *Collector) Print(loc srcloc.Location, v value.Value) {
	c.Lines = append(c.Lines, fmt.Sprintf("[debug %s] %s", loc, v.String()))
}
