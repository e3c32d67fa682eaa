package viewer

import (
	"strings"
	"testing"
)

func TestGridResize_ReallocatesAndClears(t *testing.T) {
	g := NewGrid(4, 3, " ")
	g.Cells[0] = "dirty"
	g.Resize(7, 5, " ")
	if len(g.Cells) != 35 {
		t.Fatalf("want 35 cells, got %d", len(g.Cells))
	}
	for i, c := range g.Cells {
		if c != " " {
			t.Fatalf("cell %d not cleared: %q", i, c)
		}
	}
}

func TestMerge_TransparencyAndIdempotence(t *testing.T) {
	s := NewScreen(3, 1, false)
	s.Content().Cells[0] = "A"
	s.Content().Cells[1] = "B"
	s.Content().Cells[2] = "C"
	s.Overlay().Cells[0] = ""  // transparent
	s.Overlay().Cells[1] = " " // transparent
	s.Overlay().Cells[2] = "\x1b[48;2;0;0;0mX"

	out := s.Merge()
	if out != "AB\x1b[48;2;0;0;0mX" {
		t.Fatalf("got %q", out)
	}
	if again := s.Merge(); again != out {
		t.Fatalf("merge not idempotent: %q vs %q", again, out)
	}
}

func TestClearOverlay_EmptiesCells(t *testing.T) {
	s := NewScreen(2, 2, false)
	s.Overlay().Cells[3] = "X"
	s.ClearOverlay()
	for i, c := range s.Overlay().Cells {
		if c != "" {
			t.Fatalf("cell %d not empty: %q", i, c)
		}
	}
}

func TestWriteFrame_NearestNeighborRGB(t *testing.T) {
	s := NewScreen(2, 2, false)
	// 2x2 source, distinct corners, RGB order.
	f := &Frame{
		Pix: []byte{
			255, 0, 0 /**/, 0, 255, 0,
			0, 0, 255 /**/, 10, 20, 30,
		},
		Width: 2, Height: 2, Order: OrderRGB,
	}
	if err := s.WriteFrame(f); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"\x1b[48;2;255;0;0m ", "\x1b[48;2;0;255;0m ",
		"\x1b[48;2;0;0;255m ", "\x1b[48;2;10;20;30m ",
	}
	for i, w := range want {
		if s.Content().Cells[i] != w {
			t.Fatalf("cell %d: got %q, want %q", i, s.Content().Cells[i], w)
		}
	}
}

func TestWriteFrame_ConvertsBGR(t *testing.T) {
	s := NewScreen(1, 1, false)
	f := &Frame{Pix: []byte{30, 20, 10}, Width: 1, Height: 1, Order: OrderBGR}
	if err := s.WriteFrame(f); err != nil {
		t.Fatal(err)
	}
	if got := s.Content().Cells[0]; got != "\x1b[48;2;10;20;30m " {
		t.Fatalf("got %q", got)
	}
}

func TestWriteFrame_Grayscale(t *testing.T) {
	s := NewScreen(1, 1, true)
	f := &Frame{Pix: []byte{255, 255, 255}, Width: 1, Height: 1, Order: OrderRGB}
	if err := s.WriteFrame(f); err != nil {
		t.Fatal(err)
	}
	if got := s.Content().Cells[0]; got != "\x1b[48;5;255m " {
		t.Fatalf("got %q", got)
	}
}

func TestWriteFrame_DownsamplesArbitraryResolution(t *testing.T) {
	s := NewScreen(2, 1, false)
	// 4x2 gray gradient; nearest-neighbor should pick columns 0 and 2 of row 0.
	pix := make([]byte, 4*2*3)
	for i := 0; i < 8; i++ {
		v := byte(i * 10)
		pix[i*3], pix[i*3+1], pix[i*3+2] = v, v, v
	}
	f := &Frame{Pix: pix, Width: 4, Height: 2, Order: OrderRGB}
	if err := s.WriteFrame(f); err != nil {
		t.Fatal(err)
	}
	if got := s.Content().Cells[0]; !strings.Contains(got, "48;2;0;0;0") {
		t.Fatalf("cell 0 should sample pixel (0,0): %q", got)
	}
	if got := s.Content().Cells[1]; !strings.Contains(got, "48;2;20;20;20") {
		t.Fatalf("cell 1 should sample pixel (2,0): %q", got)
	}
}
