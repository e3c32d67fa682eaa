package logs

import (
	"log"
	"os"
)

var verbose bool

// Setup enables verbose logging to the given file. The terminal raster
// owns stdout and stderr, so logs go to a file instead.
func Setup(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	verbose = true
	return nil
}

// V prints a formatted log message only when verbose logging is enabled.
func V(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}
