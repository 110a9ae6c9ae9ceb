package dump

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RingAlternates(t *testing.T) {
	data := append(bytes.Repeat([]byte{1}, 16), bytes.Repeat([]byte{2}, 16)...)
	s := newSession(bytes.NewReader(data), 0, 0, nil)

	require.NoError(t, s.readLine())
	first := s.current()
	assert.Equal(t, bytes.Repeat([]byte{1}, 16), first.bytes())
	assert.False(t, s.repeats())

	require.NoError(t, s.readLine())
	assert.Equal(t, bytes.Repeat([]byte{2}, 16), s.current().bytes())
	assert.Same(t, first, s.previous())
	assert.Equal(t, int64(16), s.current().offset)

	require.NoError(t, s.readLine())
	assert.Zero(t, s.current().n)
	assert.Equal(t, int64(32), s.total)
	assert.False(t, s.stopped)
}

func TestSession_LimitClamp(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		avail   int
		reads   []int
		stopped bool
	}{
		{name: "below line", limit: 5, avail: 64, reads: []int{5}, stopped: true},
		{name: "exact multiple", limit: 16, avail: 64, reads: []int{16, 0}, stopped: true},
		{name: "mid second line", limit: 20, avail: 64, reads: []int{16, 4}, stopped: true},
		{name: "source shorter", limit: 30, avail: 20, reads: []int{16, 4}, stopped: true},
		{name: "unlimited", limit: 0, avail: 20, reads: []int{16, 4, 0}, stopped: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(bytes.NewReader(make([]byte, tt.avail)), tt.limit, 0, nil)
			for i, want := range tt.reads {
				require.False(t, s.stopped, "read %d after stop", i)
				require.NoError(t, s.readLine())
				assert.Equal(t, want, s.current().n, "read %d", i)
			}
			assert.Equal(t, tt.stopped, s.stopped)
		})
	}
}

func TestSession_BaseOffset(t *testing.T) {
	s := newSession(bytes.NewReader(make([]byte, 20)), 0, 100, nil)
	require.NoError(t, s.readLine())
	assert.Equal(t, int64(100), s.current().offset)
	require.NoError(t, s.readLine())
	assert.Equal(t, int64(116), s.current().offset)
	assert.Equal(t, int64(120), s.offset)
	assert.Equal(t, int64(20), s.total)
}
