// Package clipsvc provides Clipboard implementations.
package clipsvc

import (
	"fmt"
	"io"
	"sync"

	"github.com/trezcool/skillshare/core"
)

// Console prints the text for the user to copy manually; the terminal analog
// of the browser clipboard.
type Console struct {
	Out io.Writer
}

var _ core.Clipboard = (*Console)(nil)

func (c *Console) WriteText(text string) error {
	_, err := fmt.Fprintf(c.Out, "copy: %s\n", text)
	return err
}

// Capture records written text; meant for tests.
type Capture struct {
	mu    sync.Mutex
	Texts []string
	Err   error
}

var _ core.Clipboard = (*Capture)(nil)

func (c *Capture) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Texts = append(c.Texts, text)
	return nil
}

// Last returns the most recently written text.
func (c *Capture) Last() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Texts) == 0 {
		return "", false
	}
	return c.Texts[len(c.Texts)-1], true
}
