// Package input turns the raw terminal byte stream into per-frame key and
// mouse events.
package input

import (
	"bufio"
	"strconv"
	"strings"
)

// maxPending bounds an unterminated escape sequence carried between reads.
const maxPending = 64

// Events is everything that arrived since the previous read.
type Events struct {
	Quit       bool
	Escape     bool
	ToggleMode bool

	// Pointer is the last reported mouse cell, 1-based as the terminal sends it.
	PointerCol  int
	PointerRow  int
	PointerSeen bool

	// Closed is set once the input stream has ended.
	Closed bool
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadEvents drains all available bytes from the stream without blocking.
// An escape sequence cut off at the end of the buffer is kept for the next call.
// A trailing ESC is held back for one read, since it may start a mouse report;
// it becomes the Escape key when nothing follows it.
func ReadEvents(s *Stream) Events {
	buf := s.pending
	carried := len(buf)
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var ev Events
	rest := Parse(buf, &ev)
	if len(rest) == 1 && (len(buf) == carried || s.closed) {
		ev.Escape = true
		rest = nil
	}
	if len(rest) <= maxPending && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	ev.Closed = s.closed
	return ev
}

// Parse applies buf to ev and returns the unterminated tail of an escape
// sequence, if any. A lone ESC at the end of buf is returned as the tail.
func Parse(buf []byte, ev *Events) []byte {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b != '\x1b' {
			applyByte(ev, b)
			continue
		}

		if i+1 >= len(buf) {
			return buf[i:]
		}
		// ESC followed by anything but '[' is the Escape key.
		if buf[i+1] != '[' {
			ev.Escape = true
			continue
		}

		end := csiEnd(buf, i+2)
		if end < 0 {
			return buf[i:]
		}
		if buf[i+2] == '<' {
			parseMouse(buf[i+3:end+1], ev)
		}
		// Arrow keys and other CSI sequences are consumed.
		i = end
	}
	return nil
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at from, or -1 if the sequence is incomplete.
func csiEnd(buf []byte, from int) int {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// parseMouse decodes an SGR mouse report body "b;x;y" followed by M or m.
func parseMouse(seq []byte, ev *Events) {
	if len(seq) == 0 {
		return
	}
	final := seq[len(seq)-1]
	if final != 'M' && final != 'm' {
		return
	}
	parts := strings.Split(string(seq[:len(seq)-1]), ";")
	if len(parts) != 3 {
		return
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	row, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}
	ev.PointerCol = col
	ev.PointerRow = row
	ev.PointerSeen = true
}

// applyByte maps a single key byte to its event.
func applyByte(ev *Events, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		ev.Quit = true
	case 'm', 'M':
		ev.ToggleMode = true
	}
}
