// Package logger provides timestamped console output for shrup commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console writes timestamped, optionally colorized status lines. Colors are
// used only when the underlying writer is a terminal, so piped and
// redirected output stays plain.
type Console struct {
	w       io.Writer
	verbose bool
	success *color.Color
	fail    *color.Color
	label   *color.Color
}

// NewConsole creates a console logger writing to w. Debugf output is dropped
// unless verbose is set.
func NewConsole(w io.Writer, verbose bool) *Console {
	c := &Console{
		w:       w,
		verbose: verbose,
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
	}
	if !writerIsTerminal(w) {
		c.success.DisableColor()
		c.fail.DisableColor()
		c.label.DisableColor()
	}
	return c
}

// writerIsTerminal reports whether w is attached to a TTY.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Infof logs an informational line.
func (c *Console) Infof(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[%s] %s\n", timestamp(), fmt.Sprintf(format, args...))
}

// Debugf logs a line only when verbose mode is enabled.
func (c *Console) Debugf(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(c.w, "[%s] %s %s\n", timestamp(), c.label.Sprint("debug"), fmt.Sprintf(format, args...))
}

// Successf logs a success line.
func (c *Console) Successf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[%s] %s %s\n", timestamp(), c.success.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Errorf logs an error line.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[%s] %s %s\n", timestamp(), c.fail.Sprint("error:"), fmt.Sprintf(format, args...))
}
