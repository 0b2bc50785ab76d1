package cellgrid

import "image"

// Mouse button bits, matching the Plan 9 mouse encoding. Wheel motion
// arrives as the scroll bits set for one event.
const (
	Button1 = 1 << 0
	Button2 = 1 << 1
	Button3 = 1 << 2

	ButtonScrollUp   = 1 << 3
	ButtonScrollDown = 1 << 4
)

// MouseEvent is one pointer sample. Buttons is the button bit set held
// at the time of the sample and Msec the device timestamp in
// milliseconds, used for velocity estimation.
type MouseEvent struct {
	Point   image.Point
	Buttons int
	Msec    uint32

	prevented bool
}

// PreventDefault stops the engine's own handling of this event. Cell
// listeners call it to claim a press or key before selection and
// navigation see it.
func (ev *MouseEvent) PreventDefault() { ev.prevented = true }

// Prevented reports whether a listener claimed the event.
func (ev *MouseEvent) Prevented() bool { return ev.prevented }

// KeyEvent is one key press or release. Shift distinguishes extending
// navigation from moving navigation.
type KeyEvent struct {
	Rune  rune
	Shift bool

	prevented bool
}

func (ev *KeyEvent) PreventDefault() { ev.prevented = true }
func (ev *KeyEvent) Prevented() bool { return ev.prevented }

// TouchPhase is the lifecycle stage of a touch sample.
type TouchPhase int

const (
	TouchBegin TouchPhase = iota
	TouchMove
	TouchEnd
)

// TouchEvent is one multi-touch sample. Points holds the active
// contacts; one point pans, two pinch-zoom.
type TouchEvent struct {
	Phase  TouchPhase
	Points []image.Point
	Msec   uint32
}
