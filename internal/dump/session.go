package dump

import (
	"bytes"
	"errors"
	"hash"
	"io"
)

// BytesPerLine is the unit of both reading and rendering.
const BytesPerLine = 16

// line is one read of up to BytesPerLine bytes.
type line struct {
	buf    [BytesPerLine]byte
	n      int
	offset int64
}

func (l *line) bytes() []byte { return l.buf[:l.n] }

func (l *line) full() bool { return l.n == BytesPerLine }

// session is the mutable state of one dump. It is created per source and
// discarded when the dump returns.
type session struct {
	src   io.Reader
	limit int64

	// lines holds the two most recent reads; cur indexes the newest.
	lines [2]line
	cur   int

	offset  int64 // absolute offset of the next line
	total   int64 // bytes consumed after the skip
	stopped bool  // limit reached; the current line is the last one

	sum hash.Hash // nil unless a checksum was requested
}

func newSession(src io.Reader, limit int64, base int64, sum hash.Hash) *session {
	return &session{src: src, limit: limit, offset: base, sum: sum}
}

func (s *session) current() *line  { return &s.lines[s.cur] }
func (s *session) previous() *line { return &s.lines[1-s.cur] }

// advance makes the older slot current so the next read never overwrites
// the line it will be compared against.
func (s *session) advance() { s.cur = 1 - s.cur }

// readLine reads the next line into the ring. A short line marks the end of
// the stream or the limit boundary.
func (s *session) readLine() error {
	s.advance()
	ln := s.current()
	ln.offset = s.offset

	n, err := io.ReadFull(s.src, ln.buf[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		ln.n = 0
		return err
	}

	if s.limit != 0 && s.total+BytesPerLine-1 >= s.limit {
		// Never report bytes past the limit, even if the source had more.
		n = int(max(0, min(int64(n), s.limit-s.total)))
		s.stopped = true
	}

	ln.n = n
	s.total += int64(n)
	s.offset += int64(n)
	if s.sum != nil {
		s.sum.Write(ln.bytes())
	}
	return nil
}

// repeats reports whether the two most recent lines are full and identical.
func (s *session) repeats() bool {
	cur, prev := s.current(), s.previous()
	return cur.full() && prev.full() && bytes.Equal(cur.bytes(), prev.bytes())
}
