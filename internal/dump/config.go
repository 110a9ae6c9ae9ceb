package dump

import (
	"io"
	"log/slog"
)

// Config is what the user asked for. It is not modified during a dump.
type Config struct {
	// ShowChars renders the masked character column.
	ShowChars bool
	// Skip is the number of leading bytes to skip before the first line.
	Skip int64
	// ShowIdentical disables collapsing of identical consecutive lines.
	ShowIdentical bool
	// Limit stops the dump after this many bytes. 0 means unlimited.
	Limit int64
	// Checksum appends a BLAKE3 digest of every consumed byte to the footer.
	Checksum bool
}

// Options wires a Dumper to its output and collaborators.
type Options struct {
	Out    io.Writer
	Logger *slog.Logger
	// Style decorates rendered fields. Nil renders plain text.
	Style Style
}

// Style decorates the fields of rendered records, e.g. with terminal colors.
// Implementations must not change the visible width of their input.
type Style interface {
	Offset(s string) string
	Rule(s string) string
	Hex(s string) string
	Chars(s string) string
	Summary(s string) string
}

// PlainStyle leaves every field unchanged.
type PlainStyle struct{}

func (PlainStyle) Offset(s string) string  { return s }
func (PlainStyle) Rule(s string) string    { return s }
func (PlainStyle) Hex(s string) string     { return s }
func (PlainStyle) Chars(s string) string   { return s }
func (PlainStyle) Summary(s string) string { return s }
