package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"termview/logs"
)

// tickInterval is the end-of-tick sleep, a tradeoff between CPU usage and
// input responsiveness.
const tickInterval = 25 * time.Millisecond

// Config assembles a session's collaborators. Paths are explicit media
// files; Folders are expanded non-recursively to their regular files in
// directory order.
type Config struct {
	Paths     []string
	Folders   []string
	Grayscale bool

	Open  OpenFunc
	Input Input
	Out   io.Writer
	Size  SizeFunc
}

// Session drives the render loop: it owns the media list, the current
// index, the screen, the command queue and the overlay toggles. It is
// single-threaded; grids and queue are never accessed concurrently.
type Session struct {
	files     []string
	index     int
	grayscale bool

	screen   *Screen
	commands []Command
	timeline Toggle
	help     Toggle

	open  OpenFunc
	input Input
	out   io.Writer
	size  SizeFunc

	cols  int
	lines int
	tick  time.Duration
}

// NewSession builds the media list and allocates the screen for the
// current terminal geometry.
func NewSession(cfg Config) (*Session, error) {
	files := append([]string{}, cfg.Paths...)
	for _, folder := range cfg.Folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no media files to display")
	}

	cols, lines, err := cfg.Size()
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}

	return &Session{
		files:     files,
		grayscale: cfg.Grayscale,
		screen:    NewScreen(cols, lines, cfg.Grayscale),
		open:      cfg.Open,
		input:     cfg.Input,
		out:       cfg.Out,
		size:      cfg.Size,
		cols:      cols,
		lines:     lines,
		tick:      tickInterval,
	}, nil
}

// Run plays the media list in order until it is exhausted, the user quits,
// or the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for s.index < len(s.files) {
		quit, err := s.playMedia(ctx, s.files[s.index])
		if err != nil {
			return err
		}
		s.index++
		if quit {
			break
		}
	}
	return nil
}

// playMedia runs the tick loop for one media item. It returns true when
// the whole session should end. Within a tick, command processing precedes
// the overlay refresh, which precedes the frame fetch, which precedes the
// draw, so the overlay and frame both reflect this tick's command.
func (s *Session) playMedia(ctx context.Context, path string) (bool, error) {
	m, err := s.open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer m.Close()
	logs.V("opened %s as %s", path, m.Kind())

	var ctrl *Controller
	if v, ok := m.(Video); ok {
		ctrl = NewController(v)
	}

	for {
		if ctx.Err() != nil {
			return true, nil
		}

		if len(s.commands) > 0 {
			cmd := s.commands[0]
			// Clear the queue to avoid command build-up: only the first
			// command of a batch survives a tick.
			s.commands = s.commands[:0]
			switch cmd {
			case CmdQuit:
				return true, nil
			case CmdNextMedia:
				return false, nil
			case CmdPrevMedia:
				// Down by two, pre-compensating the +1 applied on every
				// media completion.
				s.index -= 2
				if s.index < -1 {
					s.index = -1
				}
				return false, nil
			case CmdToggleTimeline:
				s.timeline.Toggle()
			case CmdToggleHelp:
				s.help.Toggle()
			default:
				if ctrl != nil {
					ctrl.Enqueue(cmd)
				}
			}
		}

		if err := s.writeOverlay(m, ctrl); err != nil {
			return false, err
		}

		var f *Frame
		if ctrl != nil {
			f, err = ctrl.Advance()
		} else {
			f, err = m.NextFrame()
		}
		switch {
		case errors.Is(err, ErrEndOfMedia):
			return false, nil
		case errors.Is(err, ErrUnsupportedMedia):
			if err := WriteUnsupported(s.screen.Content(), path, true, s.grayscale); err != nil {
				return false, err
			}
		case err != nil:
			return false, fmt.Errorf("failed to decode %s: %w", path, err)
		case f != nil:
			if err := s.screen.WriteFrame(f); err != nil {
				return false, err
			}
		}

		if s.input.HasPending() {
			if key, err := s.input.Read(); err == nil {
				if cmd, ok := CommandForKey(key); ok {
					s.commands = append(s.commands, cmd)
				}
			}
		}

		if err := s.draw(); err != nil {
			return false, err
		}

		select {
		case <-ctx.Done():
			return true, nil
		case <-time.After(s.tick):
		}
	}
}

// writeOverlay rebuilds the overlay grid from the current toggle state.
func (s *Session) writeOverlay(m Media, ctrl *Controller) error {
	s.screen.ClearOverlay()
	g := s.screen.Overlay()
	if s.timeline.On() {
		if err := WriteTitle(g, m.Path(), s.grayscale); err != nil {
			return err
		}
		if ctrl != nil {
			if err := WriteTimeline(g, ctrl.Position(), ctrl.Duration(), s.grayscale); err != nil {
				return err
			}
		}
		if err := WritePosition(g, s.index+1, len(s.files), s.grayscale); err != nil {
			return err
		}
	}
	if s.help.On() {
		if err := WriteHelp(g, s.grayscale); err != nil {
			return err
		}
	}
	return nil
}

// draw composites and emits the merged buffer, then checks for a terminal
// resize so the next redraw uses the correct geometry.
func (s *Session) draw() error {
	if _, err := io.WriteString(s.out, cursorHome+s.screen.Merge()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	cols, lines, err := s.size()
	if err == nil && (cols != s.cols || lines != s.lines) {
		logs.V("terminal resized %dx%d -> %dx%d", s.cols, s.lines, cols, lines)
		s.cols, s.lines = cols, lines
		s.screen.Resize(cols, lines)
	}
	return nil
}
