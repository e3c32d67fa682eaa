package viewer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ttyInput reads single keystrokes from a raw-mode tty without blocking.
type ttyInput struct {
	fd int
}

// NewTTYInput wraps a raw-mode file descriptor as an Input.
func NewTTYInput(fd int) Input {
	return &ttyInput{fd: fd}
}

// HasPending reports whether a keystroke is waiting, via a zero-timeout
// poll.
func (t *ttyInput) HasPending() bool {
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

// Read returns one pending keystroke.
func (t *ttyInput) Read() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil {
		return 0, fmt.Errorf("failed to read keystroke: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("no keystroke available")
	}
	return buf[0], nil
}
