package viewer

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"
)

// Overlay panel colors. The unsupported-media message uses the warning
// foreground so it stands out from the title/help text. When the screen is
// grayscale only the first channel is used.
var (
	TextForeground = [3]int{255, 255, 255}
	TextBackground = [3]int{0, 0, 0}
	WarnForeground = [3]int{255, 255, 0}
)

// helpWidth is the fixed width of the help panel in cells.
const helpWidth = 30

var helpLines = []string{
	" t: show/hide timeline",
	" m: next media",
	" n: previous media",
	" +: next frame",
	" -: previous frame",
	" p: play/pause",
	" h: show/hide help",
	" q: quit",
}

// overlayStyle holds the precomputed escape prefixes for a panel's text.
type overlayStyle struct {
	fg string
	bg string
}

func newOverlayStyle(grayscale bool, fg, bg [3]int) (overlayStyle, error) {
	var st overlayStyle
	var err error
	if grayscale {
		if st.fg, err = GrayscaleCode(fg[0], false); err != nil {
			return st, err
		}
		st.bg, err = GrayscaleCode(bg[0], true)
		return st, err
	}
	if st.fg, err = RGBCode(fg[0], fg[1], fg[2], false); err != nil {
		return st, err
	}
	st.bg, err = RGBCode(bg[0], bg[1], bg[2], true)
	return st, err
}

// writeText writes text into the grid at offset, one styled cell per
// character, then pads with background-filled cells up to padTo characters.
// A reset is appended to the last written cell so the colors never bleed
// past the panel. Writes past the end of the grid are dropped.
func writeText(g *Grid, offset int, text string, st overlayStyle, padTo int) {
	last := -1
	pos := offset
	written := 0
	for _, ch := range text {
		if pos < 0 || pos >= len(g.Cells) {
			pos++
			written++
			continue
		}
		g.Cells[pos] = st.bg + st.fg + string(ch)
		last = pos
		pos++
		written++
	}
	for i := written; i < padTo; i++ {
		if pos < 0 || pos >= len(g.Cells) {
			pos++
			continue
		}
		g.Cells[pos] = st.bg + " "
		last = pos
		pos++
	}
	if last >= 0 {
		g.Cells[last] += Reset
	}
}

// WriteTitle writes the media file's basename on the third-to-last row,
// left-aligned.
func WriteTitle(g *Grid, path string, grayscale bool) error {
	st, err := newOverlayStyle(grayscale, TextForeground, TextBackground)
	if err != nil {
		return err
	}
	writeText(g, (g.Lines-3)*g.Cols, filepath.Base(path), st, 0)
	return nil
}

// WritePosition writes " index/count " right-aligned on the second-to-last
// row. For videos it is written after the timeline, so it reads as a badge
// on the right end of the progress bar.
func WritePosition(g *Grid, index, count int, grayscale bool) error {
	st, err := newOverlayStyle(grayscale, TextForeground, TextBackground)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(" %d/%d ", index, count)
	writeText(g, (g.Lines-1)*g.Cols-len(text), text, st, 0)
	return nil
}

// WriteTimeline writes a progress bar on the second-to-last row and the
// current/total time labels on the last row:
//
//	#############################################
//	HH:MM:SS                             HH:MM:SS
//
// No-op when the duration is zero.
func WriteTimeline(g *Grid, positionMs, durationMs int64, grayscale bool) error {
	if durationMs == 0 {
		return nil
	}
	st, err := newOverlayStyle(grayscale, TextForeground, TextBackground)
	if err != nil {
		return err
	}

	barWidth := int(float64(positionMs) / float64(durationMs) * float64(g.Cols))
	if barWidth > g.Cols {
		barWidth = g.Cols
	}
	start := (g.Lines - 2) * g.Cols
	for x := 0; x < g.Cols; x++ {
		pos := start + x
		if pos < 0 || pos >= len(g.Cells) {
			continue
		}
		if x < barWidth {
			g.Cells[pos] = st.bg + st.fg + "#"
		} else {
			g.Cells[pos] = st.bg + " "
		}
	}
	if barWidth > 0 && start+barWidth-1 >= 0 && start+barWidth-1 < len(g.Cells) {
		g.Cells[start+barWidth-1] += Reset
	}

	cur := formatClock(positionMs)
	total := formatClock(durationMs)
	writeText(g, (g.Lines-1)*g.Cols, cur, st, 0)
	writeText(g, g.Lines*g.Cols-len(total), total, st, 0)
	return nil
}

// WriteHelp writes the fixed-size help panel anchored at the top-left: a
// solid fill row, a title row, one row per bound command, and a closing
// fill row. Short lines are padded to the full panel width so the panel
// reads as a solid rectangle.
func WriteHelp(g *Grid, grayscale bool) error {
	st, err := newOverlayStyle(grayscale, TextForeground, TextBackground)
	if err != nil {
		return err
	}
	writeText(g, 0, "", st, helpWidth)
	writeText(g, g.Cols, " Help menu", st, helpWidth)
	for i, line := range helpLines {
		writeText(g, (2+i)*g.Cols, line, st, helpWidth)
	}
	writeText(g, (2+len(helpLines))*g.Cols, "", st, helpWidth)
	return nil
}

// WriteUnsupported centers an "Unsupported media extension" message on the
// grid. When fillBackground is set the whole grid is painted with the
// background color first, otherwise the text is drawn over whatever the
// grid already holds.
func WriteUnsupported(g *Grid, path string, fillBackground, grayscale bool) error {
	st, err := newOverlayStyle(grayscale, WarnForeground, TextBackground)
	if err != nil {
		return err
	}
	if fillBackground {
		g.Clear(st.bg + " ")
	}
	msg := "Unsupported media extension: " + filepath.Ext(path)
	offset := (g.Lines*g.Cols-g.Cols)/2 - utf8.RuneCountInString(msg)/2
	writeText(g, offset, msg, st, 0)
	return nil
}

// formatClock renders milliseconds as HH:MM:SS, dropping the hour field
// under one hour.
func formatClock(ms int64) string {
	sec := ms / 1000
	min := sec / 60
	sec %= 60
	hour := min / 60
	min %= 60
	if hour > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hour, min, sec)
	}
	return fmt.Sprintf("%02d:%02d", min, sec)
}
