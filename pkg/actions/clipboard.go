// Package actions holds the small state machines behind the per-message
// controls (copy confirmation, speech playback) and the capability
// interfaces they drive.
package actions

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard is the shared clipboard capability.
type Clipboard interface {
	WriteText(text string) error
}

// OSC52Clipboard copies through the terminal's OSC 52 escape sequence, which
// reaches the host clipboard even over SSH.
type OSC52Clipboard struct {
	Out io.Writer
}

func (c *OSC52Clipboard) WriteText(text string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprint(out, osc52.New(text))
	return err
}

// SystemClipboard copies through the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
