package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/hedu/internal/config"
	"github.com/bamsammich/hedu/internal/ui"
)

func TestTheme_Forced(t *testing.T) {
	t.Parallel()

	th := ui.NewTheme(&bytes.Buffer{}, config.ThemeConfig{}, true)
	out := th.Offset("0000001F")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "0000001F")
}

func TestTheme_NotATerminal(t *testing.T) {
	t.Parallel()

	// A buffer is not a terminal, so nothing is colored unless forced.
	th := ui.NewTheme(&bytes.Buffer{}, config.ThemeConfig{}, false)
	assert.Equal(t, "00 01 ", th.Hex("00 01 "))
	assert.Equal(t, "(repeats 2 lines)", th.Summary("(repeats 2 lines)"))
}

func TestTheme_Override(t *testing.T) {
	t.Parallel()

	red := "#ff0000"
	def := ui.NewTheme(&bytes.Buffer{}, config.ThemeConfig{}, true)
	custom := ui.NewTheme(&bytes.Buffer{}, config.ThemeConfig{Rule: &red}, true)

	assert.NotEqual(t, def.Rule("│"), custom.Rule("│"))
	assert.True(t, strings.Contains(custom.Rule("│"), "│"))
	assert.Equal(t, def.Hex("41 "), custom.Hex("41 "))
}
