package ui

import "golang.org/x/term"

type fder interface {
	Fd() uintptr
}

// IsTTY reports whether v is a file attached to a terminal. Values without
// a file descriptor, such as buffers, never are.
func IsTTY(v any) bool {
	f, ok := v.(fder)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}

// TermWidth returns the width in columns of the terminal behind v, and false
// if v is not a terminal or its size cannot be determined.
func TermWidth(v any) (int, bool) {
	f, ok := v.(fder)
	if !ok {
		return 0, false
	}
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // G115: fd fits in int
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}
