package dump

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"hash"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/hedu/internal/source"
)

// ReadError reports an I/O failure from the source. It aborts the dump;
// output already written is kept.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read at offset %#x: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Result describes a finished dump.
//
// Rendered offsets are absolute positions in the source: after a seekable
// skip they start at Skipped, so the footer offset equals
// Skipped+BytesRead rather than BytesRead.
type Result struct {
	BytesRead int64 // after the skip
	Skipped   int64 // bytes the source actually skipped
	Lines     int   // data lines rendered
	Collapsed int   // repeat summaries rendered
	Checksum  string
}

type state int

const (
	stateInit state = iota
	stateSkipping
	stateStreaming
	stateDraining
	stateDone
)

// Dumper renders sources as hex. A Dumper holds no per-dump state and can
// be reused for several sources.
type Dumper struct {
	opts Options
}

// New creates a Dumper. A nil Out writes to os.Stdout.
func New(opts Options) *Dumper {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Style == nil {
		opts.Style = PlainStyle{}
	}
	return &Dumper{opts: opts}
}

// Dump streams src to the output until end of stream or cfg.Limit. Offsets
// count from the start of src, including any bytes skipped.
func (d *Dumper) Dump(src source.Source, cfg Config) (Result, error) {
	r := &run{
		cfg:    cfg,
		src:    src,
		log:    d.opts.Logger,
		render: renderer{showChars: cfg.ShowChars, style: d.opts.Style},
		out:    bufio.NewWriter(d.opts.Out),
	}
	res, err := r.loop()
	if flushErr := r.out.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("write output: %w", flushErr)
	}
	return res, err
}

// run drives one dump through the state machine.
type run struct {
	cfg    Config
	src    source.Source
	log    *slog.Logger
	render renderer
	out    *bufio.Writer
	outErr error

	sess *session
	res  Result
}

func (r *run) loop() (Result, error) {
	var (
		st      = stateInit
		pending bool // the current line was read but not yet rendered
		runLen  int
	)

	for {
		switch st {
		case stateInit:
			r.println(r.render.header())
			r.println(r.render.rule())
			st = stateSkipping

		case stateSkipping:
			var base int64
			if r.cfg.Skip > 0 {
				n, err := r.src.Skip(r.cfg.Skip)
				if err != nil {
					return r.res, &ReadError{Offset: 0, Err: err}
				}
				base = n
				r.log.Debug("skipped", "bytes", humanize.IBytes(uint64(n))) //nolint:gosec // G115: n >= 0
			}
			var sum hash.Hash
			if r.cfg.Checksum {
				sum = blake3.New()
			}
			r.sess = newSession(r.src, r.cfg.Limit, base, sum)
			r.res.Skipped = base
			st = stateStreaming

		case stateStreaming:
			if !pending {
				if err := r.read(); err != nil {
					return r.res, err
				}
			}
			pending = false

			ln := r.sess.current()
			if ln.n == 0 && !r.sess.stopped {
				st = stateDone
				continue
			}
			r.println(r.render.data(ln))
			r.res.Lines++
			if r.sess.stopped {
				st = stateDone
				continue
			}

			if err := r.read(); err != nil {
				return r.res, err
			}
			pending = true
			if !r.cfg.ShowIdentical && r.sess.repeats() {
				r.log.Debug("found a duplicating line", "offset", r.sess.previous().offset)
				runLen = 2
				st = stateDraining
			}

		case stateDraining:
			if err := r.read(); err != nil {
				return r.res, err
			}
			if r.sess.repeats() {
				runLen++
				continue
			}
			r.println(r.render.repeat(runLen))
			r.res.Collapsed++
			pending = true
			st = stateStreaming

		case stateDone:
			r.println(r.render.rule())
			r.println(r.render.footer(r.sess.offset, r.sess.total))
			if r.sess.sum != nil {
				r.res.Checksum = hex.EncodeToString(r.sess.sum.Sum(nil))
				r.println(r.render.checksum(r.res.Checksum))
			}
			r.res.BytesRead = r.sess.total
			if r.outErr != nil {
				return r.res, fmt.Errorf("write output: %w", r.outErr)
			}
			return r.res, nil
		}

		if r.outErr != nil {
			return r.res, fmt.Errorf("write output: %w", r.outErr)
		}
	}
}

func (r *run) read() error {
	if err := r.sess.readLine(); err != nil {
		r.res.BytesRead = r.sess.total
		return &ReadError{Offset: r.sess.offset, Err: err}
	}
	return nil
}

func (r *run) println(s string) {
	if r.outErr != nil {
		return
	}
	if _, err := r.out.WriteString(s); err != nil {
		r.outErr = err
		return
	}
	r.outErr = r.out.WriteByte('\n')
}
