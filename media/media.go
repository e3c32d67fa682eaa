// Package media implements the frame sources the viewer pulls from: video
// via FFmpeg, still images via the stdlib image codecs, and the
// always-failing unsupported source.
package media

import (
	"path/filepath"
	"strings"

	"github.com/asticode/go-astiav"

	"termview/logs"
	"termview/viewer"
)

func init() {
	// Suppress FFmpeg log messages
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// imageExts lists the extensions the registered image codecs decode.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Probe classifies a media file. Known image extensions win; anything else
// is opened with FFmpeg and counts as video only when it carries a video
// stream with nonzero dimensions (audio-only containers open fine but have
// no picture to show).
func Probe(path string) viewer.Kind {
	if imageExts[strings.ToLower(filepath.Ext(path))] {
		return viewer.KindImage
	}
	if probeVideo(path) {
		return viewer.KindVideo
	}
	return viewer.KindUnsupported
}

// Open probes the file once and opens the matching source. A still that
// fails to decode degrades to the unsupported source so the caller's error
// path stays uniform.
func Open(path string) (viewer.Media, error) {
	switch Probe(path) {
	case viewer.KindImage:
		src, err := OpenImage(path)
		if err != nil {
			logs.V("image decode failed for %s: %v", path, err)
			return NewUnsupported(path), nil
		}
		return src, nil
	case viewer.KindVideo:
		return OpenVideo(path)
	default:
		return NewUnsupported(path), nil
	}
}
