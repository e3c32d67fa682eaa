package viewer

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	cursorHome = "\x1b[H"
)

// Terminal is the process-wide terminal mode state, held as a scoped
// resource: raw input mode and a hidden cursor on open, guaranteed
// restoration on every exit path.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
	restored bool
}

// OpenTerminal switches the tty to raw mode and hides the cursor.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{in: os.Stdin, out: os.Stdout}
	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	fmt.Fprint(t.out, hideCursor)
	return t, nil
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (cols, lines int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Out returns the terminal writer.
func (t *Terminal) Out() io.Writer { return t.out }

// InputFd returns the raw input file descriptor for polling.
func (t *Terminal) InputFd() int { return int(t.in.Fd()) }

// MoveHome positions the cursor at the top-left before a redraw.
func (t *Terminal) MoveHome() {
	fmt.Fprint(t.out, cursorHome)
}

// Restore re-enables the cursor, resets colors and leaves raw mode. Safe
// to call multiple times.
func (t *Terminal) Restore() {
	if t.restored {
		return
	}
	t.restored = true
	fmt.Fprint(t.out, "\n"+Reset+showCursor+"\n")
	if t.oldState != nil {
		term.Restore(int(t.in.Fd()), t.oldState)
	}
}
