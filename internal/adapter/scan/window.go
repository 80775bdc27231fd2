package scan

import (
	"bufio"
	"io"
)

// WindowSize is the fixed lookahead depth: the assembler needs to see two
// lines past the current one to recognize a block boundary.
const WindowSize = 3

// Window is an ordered view of WindowSize consecutive input lines.
type Window [WindowSize]string

// WindowReader turns a line stream into overlapping fixed-size windows,
// advancing one line per step. It is single-pass and forward-only; callers
// that consume more than one line from a window resynchronize with Skip.
type WindowReader struct {
	scanner *bufio.Scanner
	buf     []string
	eof     bool
}

// NewWindowReader wraps r. Line terminators are stripped by the scanner.
func NewWindowReader(r io.Reader) *WindowReader {
	return &WindowReader{
		scanner: bufio.NewScanner(r),
		buf:     make([]string, 0, WindowSize),
	}
}

// fill tops the buffer up to WindowSize lines or until the source runs out.
func (w *WindowReader) fill() {
	for !w.eof && len(w.buf) < WindowSize {
		if !w.scanner.Scan() {
			w.eof = true
			return
		}
		w.buf = append(w.buf, w.scanner.Text())
	}
}

// Next returns the next window. Production stops once fewer than WindowSize
// lines remain; the leftovers stay buffered for Tail.
func (w *WindowReader) Next() (Window, bool) {
	w.fill()
	if len(w.buf) < WindowSize {
		return Window{}, false
	}
	var win Window
	copy(win[:], w.buf)
	w.buf = w.buf[1:]
	return win, true
}

// Skip drops up to n buffered lines without producing windows for them.
// Used after a block-start window, whose trailing two lines have already
// been consumed as header material.
func (w *WindowReader) Skip(n int) {
	w.fill()
	if n > len(w.buf) {
		n = len(w.buf)
	}
	w.buf = w.buf[n:]
}

// Tail returns the lines still buffered after Next has stopped producing.
// These are the trailing lines of the input that were only ever visible as
// lookahead, at most WindowSize-1 of them.
func (w *WindowReader) Tail() []string {
	w.fill()
	return w.buf
}

// Err reports any scanner error other than io.EOF.
func (w *WindowReader) Err() error {
	return w.scanner.Err()
}
