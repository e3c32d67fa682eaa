package viewer

import (
	"errors"
	"fmt"
)

// Kind classifies an opened media file.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unsupported"
	}
}

// PixelOrder is the channel layout of a frame's packed pixel data.
type PixelOrder int

const (
	OrderRGB PixelOrder = iota
	OrderBGR
)

// Frame is one decoded frame: packed 3-bytes-per-pixel data in the
// declared channel order, plus its presentation timestamp.
type Frame struct {
	Pix      []byte
	Width    int
	Height   int
	Order    PixelOrder
	PTS      int64 // milliseconds
	Keyframe bool
}

// Media is one open media item. NextFrame returns the next displayable
// frame; unsupported media always fails with ErrUnsupportedMedia and video
// media fails with ErrEndOfMedia when the stream is exhausted.
type Media interface {
	Kind() Kind
	Path() string
	NextFrame() (*Frame, error)
	Close() error
}

// Video is implemented by media that can be seeked. targetMs below the
// stream start means "the very beginning". anyFrame allows landing on
// non-key frames.
type Video interface {
	Media
	Seek(targetMs int64, backward, anyFrame bool) error
	Duration() int64
}

// OpenFunc opens a media file, probing its kind.
type OpenFunc func(path string) (Media, error)

// Input yields at most one pending keystroke per poll, without blocking.
type Input interface {
	HasPending() bool
	Read() (byte, error)
}

// SizeFunc reports the current terminal geometry in cells.
type SizeFunc func() (cols, lines int, err error)

var (
	// ErrEndOfMedia signals that a source has no more frames. The session
	// recovers it by advancing to the next media item.
	ErrEndOfMedia = errors.New("end of media")

	// ErrUnsupportedMedia signals that a file cannot be decoded. The session
	// recovers it by rendering the unsupported-media panel.
	ErrUnsupportedMedia = errors.New("unsupported media")
)

// RangeError reports a color channel outside [0,255]. It is a caller bug
// and aborts the render call that triggered it.
type RangeError struct {
	Name  string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between 0 and 255, got %d", e.Name, e.Value)
}
