package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "nsb",
	Level:  log.DebugLevel,
})

// JSON formats v as indented json for log arguments.
func JSON(v any) string {
	d, err := json.MarshalIndent(v, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}

// Logf logs a formatted debug message.  Maps and slices in args are
// rendered as json.
func Logf(msg string, args ...any) {
	for i := range args {
		switch args[i].(type) {
		case map[string]any, []any:
			args[i] = JSON(args[i])
		}
	}
	logger.Debug(strings.TrimRight(fmt.Sprintf(msg, args...), "\n"))
}

// Log logs msg with structured key/value pairs.
func Log(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// SetOutput redirects debug output, returning a function which
// restores the previous destination.
func SetOutput(w io.Writer) func() {
	logger.SetOutput(w)
	return func() { logger.SetOutput(os.Stderr) }
}
