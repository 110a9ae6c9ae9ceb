package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/hedu/internal/ui"
)

func TestIsTTY_NotATerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, ui.IsTTY(&bytes.Buffer{}))
	assert.False(t, ui.IsTTY(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ui.IsTTY(f))

	_, ok := ui.TermWidth(f)
	assert.False(t, ok)
	_, ok = ui.TermWidth(&bytes.Buffer{})
	assert.False(t, ok)
}
