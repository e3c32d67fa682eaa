package media

import "termview/viewer"

// UnsupportedSource stands in for media that cannot be decoded. NextFrame
// always fails with viewer.ErrUnsupportedMedia instead of carrying a nil
// frame, keeping the caller's error path uniform.
type UnsupportedSource struct {
	path string
}

// NewUnsupported creates a source for an undecodable file.
func NewUnsupported(path string) *UnsupportedSource {
	return &UnsupportedSource{path: path}
}

// Kind returns viewer.KindUnsupported.
func (s *UnsupportedSource) Kind() viewer.Kind { return viewer.KindUnsupported }

// Path returns the media file path.
func (s *UnsupportedSource) Path() string { return s.path }

// NextFrame always fails; unsupported media has no frames.
func (s *UnsupportedSource) NextFrame() (*viewer.Frame, error) {
	return nil, viewer.ErrUnsupportedMedia
}

// Close is a no-op.
func (s *UnsupportedSource) Close() error { return nil }
