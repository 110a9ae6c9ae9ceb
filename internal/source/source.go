package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// ErrInteractive is returned by Stdin when standard input is a terminal
// with nothing redirected into it.
var ErrInteractive = errors.New("refusing to dump from interactive terminal")

// Compile-time interface checks.
var (
	_ Source = (*File)(nil)
	_ Source = (*Stream)(nil)
)

// Source is a readable byte origin that can optionally skip ahead.
type Source interface {
	io.Reader
	// Skip advances past n bytes without reading them and reports how far
	// the cursor actually moved. Sources without a cursor move 0 bytes and
	// return a nil error.
	Skip(n int64) (int64, error)
}

// OpenError reports that a named source could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// File is a seekable source.
type File struct {
	rs     io.ReadSeeker
	closer io.Closer
	name   string
}

// NewFile wraps an already opened seekable reader. The caller keeps ownership.
func NewFile(rs io.ReadSeeker, name string) *File {
	return &File{rs: rs, name: name}
}

// Open opens the file at path for dumping. The returned File must be closed
// by the caller.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &File{rs: f, closer: f, name: path}, nil
}

func (f *File) Read(p []byte) (int, error) { return f.rs.Read(p) }

// Skip seeks forward by n bytes relative to the current position.
func (f *File) Skip(n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	if _, err := f.rs.Seek(n, io.SeekCurrent); err != nil {
		return 0, fmt.Errorf("seek %s: %w", f.name, err)
	}
	return n, nil
}

// Name returns the path or label the source was created with.
func (f *File) Name() string { return f.name }

// Close closes the underlying file if Open created it.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Stream is a source without a cursor, such as standard input or a pipe.
type Stream struct {
	r      io.Reader
	Logger *slog.Logger
}

// NewStream wraps r. A nil logger falls back to slog.Default().
func NewStream(r io.Reader, logger *slog.Logger) *Stream {
	return &Stream{r: r, Logger: logger}
}

// Stdin returns standard input as a Stream, or ErrInteractive if f is a
// terminal.
func Stdin(f *os.File, logger *slog.Logger) (*Stream, error) {
	if term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: fd fits in int
		return nil, ErrInteractive
	}
	return NewStream(f, logger), nil
}

func (s *Stream) Read(p []byte) (int, error) { return s.r.Read(p) }

// Skip is a no-op: the request is logged and dropped.
func (s *Stream) Skip(n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	s.logger().Warn("can't skip bytes on a non-seekable stream", "requested", n)
	return 0, nil
}

func (s *Stream) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
