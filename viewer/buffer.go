package viewer

import "strings"

// Grid is a cols×lines cell buffer in row-major order. Each cell holds a
// string fragment: escape prefix plus glyph(s). Length is always exactly
// Cols*Lines.
type Grid struct {
	Cols  int
	Lines int
	Cells []string
}

// NewGrid allocates a grid with every cell set to fill.
func NewGrid(cols, lines int, fill string) *Grid {
	g := &Grid{}
	g.Resize(cols, lines, fill)
	return g
}

// Clear sets every cell to fill.
func (g *Grid) Clear(fill string) {
	for i := range g.Cells {
		g.Cells[i] = fill
	}
}

// Resize reallocates the grid for the new geometry and clears it to fill.
// Old content is never preserved; the viewer accepts a flicker on resize
// rather than stale geometry.
func (g *Grid) Resize(cols, lines int, fill string) {
	g.Cols = cols
	g.Lines = lines
	g.Cells = make([]string, cols*lines)
	if fill != "" {
		g.Clear(fill)
	}
}

// Screen owns the content and overlay grids for the current terminal
// geometry and merges them into one output string per redraw.
type Screen struct {
	grayscale bool
	content   *Grid
	overlay   *Grid
}

// NewScreen creates a screen for the given geometry.
func NewScreen(cols, lines int, grayscale bool) *Screen {
	return &Screen{
		grayscale: grayscale,
		content:   NewGrid(cols, lines, " "),
		overlay:   NewGrid(cols, lines, ""),
	}
}

// Content returns the decoded-frame grid.
func (s *Screen) Content() *Grid { return s.content }

// Overlay returns the informational overlay grid.
func (s *Screen) Overlay() *Grid { return s.overlay }

// Size returns the current geometry in cells.
func (s *Screen) Size() (cols, lines int) { return s.content.Cols, s.content.Lines }

// Resize reallocates and clears both grids for the new geometry.
func (s *Screen) Resize(cols, lines int) {
	s.content.Resize(cols, lines, " ")
	s.overlay.Resize(cols, lines, "")
}

// ClearOverlay resets the overlay grid to empty cells. An empty cell is
// the sentinel for "no overlay content here", distinct from a visible
// blank cell.
func (s *Screen) ClearOverlay() {
	s.overlay.Clear("")
}

// WriteFrame resamples the frame to exactly cols×lines cells with
// nearest-neighbor selection and writes one background-colored space per
// cell into the content grid. Nearest-neighbor trades quality for speed;
// terminal cells are coarse enough that smoothing buys nothing.
func (s *Screen) WriteFrame(f *Frame) error {
	cols, lines := s.content.Cols, s.content.Lines
	pos := 0
	for y := 0; y < lines; y++ {
		srcY := y * f.Height / lines
		for x := 0; x < cols; x++ {
			srcX := x * f.Width / cols
			i := (srcY*f.Width + srcX) * 3
			r, g, b := int(f.Pix[i]), int(f.Pix[i+1]), int(f.Pix[i+2])
			if f.Order == OrderBGR {
				r, b = b, r
			}
			var code string
			var err error
			if s.grayscale {
				code, err = GrayscaleCode((299*r+587*g+114*b)/1000, true)
			} else {
				code, err = RGBCode(r, g, b, true)
			}
			if err != nil {
				return err
			}
			s.content.Cells[pos] = code + " "
			pos++
		}
	}
	return nil
}

// Merge composites the overlay over the content grid. Overlay cells that
// are empty or a single space are transparent: the content cell shows
// through. Any other overlay cell wins.
func (s *Screen) Merge() string {
	var b strings.Builder
	for i, c := range s.content.Cells {
		o := s.overlay.Cells[i]
		if o == "" || o == " " {
			b.WriteString(c)
		} else {
			b.WriteString(o)
		}
	}
	return b.String()
}
