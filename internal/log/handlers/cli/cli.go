// Package cli implements a colored apex/log handler for terminals.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

// Default handler outputting to stderr.
var Default = New(os.Stderr)

var bold = color.New(color.Bold)

// Colors mapping.
var Colors = [...]*color.Color{
	log.DebugLevel: color.New(color.FgWhite),
	log.InfoLevel:  color.New(color.FgBlue),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed),
}

// Strings mapping.
var Strings = [...]string{
	log.DebugLevel: "•",
	log.InfoLevel:  "•",
	log.WarnLevel:  "•",
	log.ErrorLevel: "⨯",
	log.FatalLevel: "⨯",
}

// Handler implementation.
type Handler struct {
	mu      sync.Mutex
	Writer  io.Writer
	Padding int
}

var _ log.Handler = &Handler{}

// New handler.
func New(w io.Writer) *Handler {
	if f, ok := w.(*os.File); ok {
		return &Handler{
			Writer:  colorable.NewColorable(f),
			Padding: 3,
		}
	}
	return &Handler{
		Writer:  w,
		Padding: 3,
	}
}

// HandleLog implements log.Handler. Single-line fields follow the message
// as name=value pairs; multi-line fields (e.g., the headers of an HTTP
// diagnostic) are printed below it, one indented line each.
func (h *Handler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	color := Colors[e.Level]
	level := Strings[e.Level]

	var (
		inline    strings.Builder
		multiline []string
	)
	for _, name := range e.Fields.Names() {
		value := fmt.Sprint(e.Fields.Get(name))
		if strings.Contains(value, "\n") {
			for _, line := range strings.Split(value, "\n") {
				multiline = append(multiline, fmt.Sprintf("%s: %s", color.Sprint(name), line))
			}
			continue
		}
		fmt.Fprintf(&inline, " %s=%s", color.Sprint(name), value)
	}

	indent := strings.Repeat(" ", h.Padding+2)
	fmt.Fprintf(h.Writer, "%s%s\n", color.Sprintf("%s %-25s", bold.Sprintf("%*s", h.Padding+1, level), e.Message), inline.String())
	for _, line := range multiline {
		fmt.Fprintf(h.Writer, "%s%s\n", indent, line)
	}
	return nil
}
