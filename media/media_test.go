package media

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"termview/viewer"
)

func TestProbe_ImageExtensions(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.webp"} {
		if kind := Probe(name); kind != viewer.KindImage {
			t.Fatalf("%s: got %v, want image", name, kind)
		}
	}
}

func TestProbe_GarbageIsUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "weird.xyz")
	if err := os.WriteFile(p, []byte("not a media file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if kind := Probe(p); kind != viewer.KindUnsupported {
		t.Fatalf("got %v, want unsupported", kind)
	}
}

func TestOpenImage_DecodesToRGBFrame(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "red.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := OpenImage(p)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	frame, err := src.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Width != 2 || frame.Height != 1 {
		t.Fatalf("frame %dx%d", frame.Width, frame.Height)
	}
	if frame.Order != viewer.OrderRGB {
		t.Fatal("image frames should be RGB ordered")
	}
	want := []byte{255, 0, 0, 0, 0, 255}
	for i, b := range want {
		if frame.Pix[i] != b {
			t.Fatalf("pix[%d] = %d, want %d", i, frame.Pix[i], b)
		}
	}

	// A still returns the same cached frame every tick.
	again, err := src.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if again != frame {
		t.Fatal("expected the cached frame")
	}
}

func TestOpen_CorruptImageDegradesToUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(p, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind() != viewer.KindUnsupported {
		t.Fatalf("got %v, want unsupported", m.Kind())
	}
}

func TestUnsupported_NextFrameAlwaysFails(t *testing.T) {
	src := NewUnsupported("weird.xyz")
	for i := 0; i < 3; i++ {
		_, err := src.NextFrame()
		if !errors.Is(err, viewer.ErrUnsupportedMedia) {
			t.Fatalf("want ErrUnsupportedMedia, got %v", err)
		}
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
}
