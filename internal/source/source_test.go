package source_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/hedu/internal/source"
)

func TestOpen_NotExist(t *testing.T) {
	t.Parallel()

	_, err := source.Open(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)

	var openErr *source.OpenError
	require.True(t, errors.As(err, &openErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, openErr.Path, "missing.bin")
}

func TestFile_Skip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef"), 0o644))

	f, err := source.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Skip(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(rest))
}

func TestFile_SkipZero(t *testing.T) {
	t.Parallel()

	f := source.NewFile(bytes.NewReader([]byte("abc")), "mem")
	n, err := f.Skip(0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "mem", f.Name())
	assert.NoError(t, f.Close())
}

func TestStream_SkipIsNoop(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s := source.NewStream(strings.NewReader("hello"), logger)
	n, err := s.Skip(3)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, logBuf.String(), "can't skip")

	// Nothing was consumed.
	rest, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(rest))
}

func TestStdin_Pipe(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	go func() {
		_, _ = w.Write([]byte("piped"))
		w.Close()
	}()

	s, err := source.Stdin(r, nil)
	require.NoError(t, err)

	got, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "piped", string(got))
}
