package dump

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	sepVert  = "│"
	sepHoriz = "─"

	hexDigits    = "0123456789ABCDEF"
	repeatMarker = "^^^^^^^^"

	offsetWidth = 8
	// Three columns per byte plus the gap between the two halves.
	hexWidth = BytesPerLine*3 + 1
	// |chars|
	charsWidth = BytesPerLine + 2
)

// MaskByte maps a byte to the glyph shown in the character column.
func MaskByte(b byte) rune {
	switch {
	case b > ' ' && b < 0x7f:
		return rune(b)
	case b == '\n':
		return '↩'
	case b == ' ':
		return '␣'
	case b == '\t':
		return '⭾'
	default:
		return '�'
	}
}

// renderer formats records. It never writes and never touches the session.
type renderer struct {
	showChars bool
	style     Style
}

// width is the visible width of a data line.
// LineWidth is the width in columns of every rendered line.
func LineWidth(showChars bool) int {
	return renderer{showChars: showChars}.width()
}

func (r renderer) width() int {
	w := offsetWidth + 3 + hexWidth
	if r.showChars {
		w += 2 + charsWidth
	}
	return w
}

func (r renderer) header() string {
	var b strings.Builder
	b.WriteString(pad("DATA IDX", offsetWidth))
	b.WriteString(" " + sepVert + " ")
	if !r.showChars {
		b.WriteString("DATA AS HEX")
		return b.String()
	}
	b.WriteString(pad("DATA AS HEX", hexWidth))
	b.WriteString(sepVert + " CHARS")
	return b.String()
}

func (r renderer) rule() string {
	return r.style.Rule(strings.Repeat(sepHoriz, r.width()))
}

func (r renderer) data(ln *line) string {
	var b strings.Builder
	b.WriteString(r.style.Offset(fmt.Sprintf("%08X", ln.offset)))
	b.WriteString(" " + r.style.Rule(sepVert) + " ")
	b.WriteString(r.style.Hex(hexColumn(ln.bytes())))
	if r.showChars {
		b.WriteString(r.style.Rule(sepVert) + " ")
		b.WriteString(r.style.Chars(charColumn(ln.bytes())))
	}
	return b.String()
}

func (r renderer) repeat(count int) string {
	var b strings.Builder
	b.WriteString(r.style.Summary(repeatMarker))
	b.WriteString(" " + r.style.Rule(sepVert) + " ")
	b.WriteString(r.style.Summary(pad(fmt.Sprintf("(repeats %d lines)", count), hexWidth)))
	if r.showChars {
		b.WriteString(r.style.Rule(sepVert) + " ")
		b.WriteString("|" + strings.Repeat(" ", BytesPerLine) + "|")
	}
	return b.String()
}

func (r renderer) footer(end, total int64) string {
	return fmt.Sprintf("%s %s read %d bytes (%s)",
		r.style.Offset(fmt.Sprintf("%08X", end)),
		r.style.Rule(sepVert),
		total,
		humanize.IBytes(uint64(total)), //nolint:gosec // G115: total is never negative
	)
}

func (r renderer) checksum(digest string) string {
	return pad("BLAKE3", offsetWidth) + " " + r.style.Rule(sepVert) + " " + digest
}

// hexColumn renders up to BytesPerLine bytes, padding missing slots with
// blanks so every line has the same width.
func hexColumn(data []byte) string {
	var b strings.Builder
	b.Grow(hexWidth)
	for i := 0; i < BytesPerLine; i++ {
		if i == BytesPerLine/2 {
			b.WriteByte(' ')
		}
		if i >= len(data) {
			b.WriteString("   ")
			continue
		}
		b.WriteByte(hexDigits[data[i]>>4])
		b.WriteByte(hexDigits[data[i]&0x0f])
		b.WriteByte(' ')
	}
	return b.String()
}

func charColumn(data []byte) string {
	if len(data) == 0 {
		return strings.Repeat(" ", charsWidth)
	}
	var b strings.Builder
	b.WriteByte('|')
	for _, c := range data {
		b.WriteRune(MaskByte(c))
	}
	b.WriteByte('|')
	// Short lines are padded after the closing bar so every line is
	// charsWidth columns wide.
	b.WriteString(strings.Repeat(" ", BytesPerLine-len(data)))
	return b.String()
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
