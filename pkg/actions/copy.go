package actions

import "time"

// ConfirmTimeout is how long the copy control stays in its confirmed state
// before reverting to idle.
const ConfirmTimeout = 2 * time.Second

// CopyControl is the copy-confirmation toggle attached to a rendered
// assistant message: Idle -> Confirmed -> Idle. The revert timer itself is
// scheduled by the caller so the control stays on the event loop; the
// generation counter makes a restarted timer win over a stale one.
type CopyControl struct {
	clip      Clipboard
	confirmed bool
	gen       int
}

// NewCopyControl creates an idle copy control writing through clip.
func NewCopyControl(clip Clipboard) *CopyControl {
	return &CopyControl{clip: clip}
}

// Activate copies the message's raw text and enters the confirmed state.
// The returned generation must be passed to Revert when the caller's
// ConfirmTimeout timer fires; re-activation bumps the generation, which
// restarts the window.
func (c *CopyControl) Activate(text string) (int, error) {
	if err := c.clip.WriteText(text); err != nil {
		return 0, err
	}
	c.gen++
	c.confirmed = true
	return c.gen, nil
}

// Revert returns the control to idle if gen is still the current
// activation. Stale timers from earlier activations are ignored.
func (c *CopyControl) Revert(gen int) {
	if gen == c.gen {
		c.confirmed = false
	}
}

// Confirmed reports whether the control is showing its copied confirmation.
func (c *CopyControl) Confirmed() bool {
	return c.confirmed
}
