// Package input implements the NES controller shift-register protocol: a
// strobe latch and an 8-bit shift register per port, read one bit at a
// time through $4016/$4017.
package input

import "github.com/vibenes/core/pkg/savestate"

// Controller models both controller ports' shift registers (spec.md §4.5).
type Controller struct {
	buttons [2]uint8 // latched button mask per port, bit order A/B/Select/Start/Up/Down/Left/Right
	shift   [2]uint8 // shift register loaded from buttons on strobe
	strobe  bool
}

// Button mask bits, matching the physical controller's shift order.
const (
	ButtonMaskA      = 1 << 0
	ButtonMaskB      = 1 << 1
	ButtonMaskSelect = 1 << 2
	ButtonMaskStart  = 1 << 3
	ButtonMaskUp     = 1 << 4
	ButtonMaskDown   = 1 << 5
	ButtonMaskLeft   = 1 << 6
	ButtonMaskRight  = 1 << 7
)

// New creates a new Controller instance.
func New() *Controller {
	return &Controller{}
}

// SetButtons latches the full 8-bit button mask for the given player (0 or
// 1) onto its port. While strobe is held high the shift register keeps
// reloading from this value every read, matching hardware.
func (c *Controller) SetButtons(player int, mask uint8) {
	if player < 0 || player > 1 {
		return
	}
	c.buttons[player] = mask
	if c.strobe {
		c.shift[player] = mask
	}
}

// SetButton sets or clears a single button bit for the given player.
func (c *Controller) SetButton(player int, buttonMask uint8, pressed bool) {
	if player < 0 || player > 1 {
		return
	}
	if pressed {
		c.SetButtons(player, c.buttons[player]|buttonMask)
	} else {
		c.SetButtons(player, c.buttons[player]&^buttonMask)
	}
}

// Read shifts out the next button bit for the given port (0 or 1). Once
// the 8 buttons have been shifted out, real hardware reports 1 for every
// further read until the next strobe.
func (c *Controller) Read(player int) uint8 {
	if player < 0 || player > 1 {
		return 1
	}
	if c.strobe {
		c.shift[player] = c.buttons[player]
	}
	bit := c.shift[player] & 1
	c.shift[player] = (c.shift[player] >> 1) | 0x80
	return bit
}

// Write latches the strobe bit from a $4016 write; strobe high keeps both
// ports' shift registers continuously reloaded from their button masks.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shift[0] = c.buttons[0]
		c.shift[1] = c.buttons[1]
	}
}

// GetButtons returns the latched button mask for the given player.
func (c *Controller) GetButtons(player int) uint8 {
	if player < 0 || player > 1 {
		return 0
	}
	return c.buttons[player]
}

// SaveState writes both ports' latched buttons, shift registers, and the
// strobe latch.
func (c *Controller) SaveState(w *savestate.Writer) {
	w.WriteUint8(c.buttons[0])
	w.WriteUint8(c.buttons[1])
	w.WriteUint8(c.shift[0])
	w.WriteUint8(c.shift[1])
	w.WriteBool(c.strobe)
}

// LoadState restores everything SaveState wrote.
func (c *Controller) LoadState(r *savestate.Reader) error {
	c.buttons[0] = r.ReadUint8()
	c.buttons[1] = r.ReadUint8()
	c.shift[0] = r.ReadUint8()
	c.shift[1] = r.ReadUint8()
	c.strobe = r.ReadBool()
	return r.Err()
}
