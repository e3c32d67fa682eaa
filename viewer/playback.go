package viewer

import "termview/logs"

// Controller is the per-video playback state machine. It turns a serial
// command queue into seek/step/pause transitions against the underlying
// video source. It lives as long as the media is open and exclusively owns
// the source handle and the single cached last frame.
type Controller struct {
	src   Video
	queue []Command

	playing    bool
	positionMs int64
	durationMs int64

	firstKeyframeMs int64
	hasKeyframe     bool

	lastFrame *Frame
	closed    bool
}

// NewController creates a controller for an open video, initially playing.
func NewController(src Video) *Controller {
	return &Controller{
		src:        src,
		playing:    true,
		durationMs: src.Duration(),
	}
}

// Enqueue appends a playback command. Multiple commands may accumulate
// between ticks; Advance consumes them one at a time.
func (c *Controller) Enqueue(cmd Command) {
	c.queue = append(c.queue, cmd)
}

// Position returns the presentation timestamp of the last decoded frame in
// milliseconds.
func (c *Controller) Position() int64 { return c.positionMs }

// Duration returns the media duration in milliseconds.
func (c *Controller) Duration() int64 { return c.durationMs }

// Playing reports whether playback is running or paused.
func (c *Controller) Playing() bool { return c.playing }

// Advance dequeues at most one command, applies it, and returns the frame
// to display. While paused, and unless the command forces a decode step,
// the cached last frame is returned and the decode path is never entered.
// Source exhaustion surfaces as ErrEndOfMedia.
func (c *Controller) Advance() (*Frame, error) {
	shouldSample := false
	if len(c.queue) > 0 {
		cmd := c.queue[0]
		c.queue = c.queue[1:]
		shouldSample = c.apply(cmd)
	}

	if !c.playing && !shouldSample {
		return c.lastFrame, nil
	}

	f, err := c.src.NextFrame()
	if err != nil {
		return nil, err
	}
	if !c.hasKeyframe && f.Keyframe {
		c.firstKeyframeMs = f.PTS
		c.hasKeyframe = true
	}
	c.lastFrame = f
	c.positionMs = f.PTS
	return f, nil
}

// apply runs one command and reports whether a decode step is required
// this tick regardless of play state.
func (c *Controller) apply(cmd Command) bool {
	switch cmd {
	case CmdStepForward:
		// Next sample point at or after the current position.
		if err := c.src.Seek(c.positionMs, false, false); err != nil {
			logs.V("step forward seek failed: %v", err)
		}
		return true
	case CmdStepBack:
		// One second back once a keyframe has been observed, else the
		// stream start. Exact seek failures degrade to any earlier sample.
		target := c.positionMs - 1000
		if !c.hasKeyframe {
			target = -1
		}
		if err := c.src.Seek(target, true, false); err != nil {
			logs.V("step back seek failed, falling back to start: %v", err)
			if err := c.src.Seek(-1, true, true); err != nil {
				logs.V("fallback seek failed: %v", err)
			}
		}
		return true
	case CmdRewind:
		if err := c.src.Seek(-1, true, true); err != nil {
			logs.V("rewind seek failed: %v", err)
		}
		c.playing = true
		return true
	case CmdPlayPause:
		// The flip itself must not force a decode.
		c.playing = !c.playing
		return false
	}
	return false
}

// Close releases the underlying source handle. Idempotent.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.src.Close()
}
