package viewer

// Command is one user action, produced at most once per input poll.
type Command int

const (
	CmdQuit Command = iota
	CmdRewind
	CmdNextMedia
	CmdPrevMedia
	CmdStepForward
	CmdStepBack
	CmdPlayPause
	CmdToggleTimeline
	CmdToggleHelp
)

// CommandForKey maps a keystroke to its command. Unknown keys are ignored.
func CommandForKey(key byte) (Command, bool) {
	switch key {
	case 'q':
		return CmdQuit, true
	case 'r':
		return CmdRewind, true
	case 'm':
		return CmdNextMedia, true
	case 'n':
		return CmdPrevMedia, true
	case '+':
		return CmdStepForward, true
	case '-':
		return CmdStepBack, true
	case 'p':
		return CmdPlayPause, true
	case 't':
		return CmdToggleTimeline, true
	case 'h':
		return CmdToggleHelp, true
	}
	return 0, false
}

// Toggle is a named overlay flag. It is independent of playback state and
// persists across media switches within a session.
type Toggle struct {
	on bool
}

func (t *Toggle) Toggle() { t.on = !t.on }

func (t *Toggle) On() bool { return t.on }
