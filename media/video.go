package media

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"

	"termview/viewer"
)

// VideoSource decodes a video file into BGR24 frames with millisecond
// timestamps and supports keyframe-aware seeking.
type VideoSource struct {
	path string

	formatCtx *astiav.FormatContext
	codecCtx  *astiav.CodecContext
	stream    *astiav.Stream
	streamIdx int

	pkt      *astiav.Packet
	frame    *astiav.Frame
	bgrFrame *astiav.Frame
	swsCtx   *astiav.SoftwareScaleContext

	timeBase   astiav.Rational
	durationMs int64

	closed bool
}

// probeVideo reports whether the file has a video stream with nonzero
// dimensions.
func probeVideo(path string) bool {
	fc := astiav.AllocFormatContext()
	if fc == nil {
		return false
	}
	if err := fc.OpenInput(path, nil, nil); err != nil {
		fc.Free()
		return false
	}
	defer func() {
		fc.CloseInput()
		fc.Free()
	}()
	if err := fc.FindStreamInfo(nil); err != nil {
		return false
	}
	for _, stream := range fc.Streams() {
		cp := stream.CodecParameters()
		if cp.MediaType() == astiav.MediaTypeVideo && cp.Width() > 0 && cp.Height() > 0 {
			return true
		}
	}
	return false
}

// OpenVideo opens the file, finds its first video stream and prepares the
// decoder.
func OpenVideo(path string) (*VideoSource, error) {
	v := &VideoSource{path: path, streamIdx: -1}

	v.formatCtx = astiav.AllocFormatContext()
	if v.formatCtx == nil {
		return nil, fmt.Errorf("failed to allocate format context")
	}
	if err := v.formatCtx.OpenInput(path, nil, nil); err != nil {
		v.formatCtx.Free()
		v.formatCtx = nil
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	if err := v.formatCtx.FindStreamInfo(nil); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to find stream info: %w", err)
	}

	for _, stream := range v.formatCtx.Streams() {
		if stream.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			v.stream = stream
			v.streamIdx = stream.Index()
			v.timeBase = stream.TimeBase()
			break
		}
	}
	if v.streamIdx == -1 {
		v.Close()
		return nil, fmt.Errorf("no video stream found")
	}

	codecParams := v.stream.CodecParameters()
	codec := astiav.FindDecoder(codecParams.CodecID())
	if codec == nil {
		v.Close()
		return nil, fmt.Errorf("video codec not found: %s", codecParams.CodecID())
	}
	v.codecCtx = astiav.AllocCodecContext(codec)
	if v.codecCtx == nil {
		v.Close()
		return nil, fmt.Errorf("failed to allocate video codec context")
	}
	if err := codecParams.ToCodecContext(v.codecCtx); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to copy video codec params: %w", err)
	}
	if err := v.codecCtx.Open(codec, nil); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to open video codec: %w", err)
	}

	v.pkt = astiav.AllocPacket()
	v.frame = astiav.AllocFrame()
	v.bgrFrame = astiav.AllocFrame()

	// Container duration is in AV_TIME_BASE units (microseconds).
	if d := v.formatCtx.Duration(); d > 0 {
		v.durationMs = d / 1000
	}

	return v, nil
}

func (v *VideoSource) initScaleContext() error {
	w, h := v.codecCtx.Width(), v.codecCtx.Height()
	var err error
	v.swsCtx, err = astiav.CreateSoftwareScaleContext(
		w, h, v.codecCtx.PixelFormat(),
		w, h, astiav.PixelFormatBgr24,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return fmt.Errorf("failed to create sws context: %w", err)
	}

	v.bgrFrame.SetWidth(w)
	v.bgrFrame.SetHeight(h)
	v.bgrFrame.SetPixelFormat(astiav.PixelFormatBgr24)
	if err := v.bgrFrame.AllocBuffer(1); err != nil {
		return fmt.Errorf("failed to allocate BGR frame buffer: %w", err)
	}
	return nil
}

// Kind returns viewer.KindVideo.
func (v *VideoSource) Kind() viewer.Kind { return viewer.KindVideo }

// Path returns the media file path.
func (v *VideoSource) Path() string { return v.path }

// Duration returns the container duration in milliseconds.
func (v *VideoSource) Duration() int64 { return v.durationMs }

// NextFrame decodes the next video frame. Source exhaustion surfaces as
// viewer.ErrEndOfMedia.
func (v *VideoSource) NextFrame() (*viewer.Frame, error) {
	if v.closed {
		return nil, fmt.Errorf("video source closed")
	}

	for {
		if err := v.formatCtx.ReadFrame(v.pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) {
				return nil, viewer.ErrEndOfMedia
			}
			return nil, fmt.Errorf("failed to read packet: %w", err)
		}
		if v.pkt.StreamIndex() != v.streamIdx {
			v.pkt.Unref()
			continue
		}

		keyframe := v.pkt.Flags().Has(astiav.PacketFlagKey)
		err := v.codecCtx.SendPacket(v.pkt)
		v.pkt.Unref()
		if err != nil {
			return nil, fmt.Errorf("failed to send video packet: %w", err)
		}

		if err := v.codecCtx.ReceiveFrame(v.frame); err != nil {
			if errors.Is(err, astiav.ErrEagain) {
				// Decoder needs more packets before emitting a frame.
				continue
			}
			if errors.Is(err, astiav.ErrEof) {
				return nil, viewer.ErrEndOfMedia
			}
			return nil, fmt.Errorf("failed to receive video frame: %w", err)
		}

		ptsMs := int64(float64(v.frame.Pts()) * float64(v.timeBase.Num()) / float64(v.timeBase.Den()) * 1000)

		if v.swsCtx == nil {
			if err := v.initScaleContext(); err != nil {
				v.frame.Unref()
				return nil, err
			}
		}
		if err := v.swsCtx.ScaleFrame(v.frame, v.bgrFrame); err != nil {
			v.frame.Unref()
			return nil, fmt.Errorf("failed to scale frame: %w", err)
		}
		v.frame.Unref()

		data, err := v.bgrFrame.Data().Bytes(1)
		if err != nil {
			return nil, fmt.Errorf("failed to get BGR bytes: %w", err)
		}
		// Copy out, the frame buffer is reused on the next decode.
		pix := make([]byte, len(data))
		copy(pix, data)

		return &viewer.Frame{
			Pix:      pix,
			Width:    v.bgrFrame.Width(),
			Height:   v.bgrFrame.Height(),
			Order:    viewer.OrderBGR,
			PTS:      ptsMs,
			Keyframe: keyframe,
		}, nil
	}
}

// Seek repositions the stream at targetMs. targetMs below zero means the
// stream start. backward selects the nearest sample at or before the
// target; anyFrame allows landing on non-key frames.
func (v *VideoSource) Seek(targetMs int64, backward, anyFrame bool) error {
	if v.closed {
		return fmt.Errorf("video source closed")
	}

	var flags []astiav.SeekFlag
	if backward {
		flags = append(flags, astiav.SeekFlagBackward)
	}
	if anyFrame {
		flags = append(flags, astiav.SeekFlagAny)
	}

	ts := int64(float64(targetMs) / 1000 * float64(v.timeBase.Den()) / float64(v.timeBase.Num()))
	if err := v.formatCtx.SeekFrame(v.streamIdx, ts, astiav.NewSeekFlags(flags...)); err != nil {
		return fmt.Errorf("failed to seek to %dms: %w", targetMs, err)
	}
	v.codecCtx.FlushBuffers()
	return nil
}

// Close releases all FFmpeg resources. Idempotent.
func (v *VideoSource) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	if v.pkt != nil {
		v.pkt.Free()
		v.pkt = nil
	}
	if v.frame != nil {
		v.frame.Free()
		v.frame = nil
	}
	if v.bgrFrame != nil {
		v.bgrFrame.Free()
		v.bgrFrame = nil
	}
	if v.swsCtx != nil {
		v.swsCtx.Free()
		v.swsCtx = nil
	}
	if v.codecCtx != nil {
		v.codecCtx.Free()
		v.codecCtx = nil
	}
	if v.formatCtx != nil {
		v.formatCtx.CloseInput()
		v.formatCtx.Free()
		v.formatCtx = nil
	}
	return nil
}
