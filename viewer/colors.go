package viewer

import "fmt"

// Reset clears all SGR attributes. Panels append it after their last
// written cell to avoid color bleed into untouched cells.
const Reset = "\x1b[0m"

const (
	fgTrueColor = "\x1b[38;2;%d;%d;%dm"
	bgTrueColor = "\x1b[48;2;%d;%d;%dm"

	// The extended palette reserves 232..255 for 24 grayscale steps.
	fgGray   = "\x1b[38;5;%dm"
	bgGray   = "\x1b[48;5;%dm"
	grayBase = 232
)

// GrayscaleCode maps a grayscale value to the escape code selecting the
// nearest of the terminal's 24 extended grayscale palette entries, as
// foreground or background color.
func GrayscaleCode(v int, background bool) (string, error) {
	if v < 0 || v > 255 {
		return "", &RangeError{Name: "v", Value: v}
	}
	bucket := v * 23 / 255
	format := fgGray
	if background {
		format = bgGray
	}
	return fmt.Sprintf(format, grayBase+bucket), nil
}

// RGBCode maps an RGB triple to a 24-bit true-color escape code, as
// foreground or background color. Channels are embedded exactly, no
// quantization.
func RGBCode(r, g, b int, background bool) (string, error) {
	switch {
	case r < 0 || r > 255:
		return "", &RangeError{Name: "r", Value: r}
	case g < 0 || g > 255:
		return "", &RangeError{Name: "g", Value: g}
	case b < 0 || b > 255:
		return "", &RangeError{Name: "b", Value: b}
	}
	format := fgTrueColor
	if background {
		format = bgTrueColor
	}
	return fmt.Sprintf(format, r, g, b), nil
}
