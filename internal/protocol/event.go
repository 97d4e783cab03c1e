// Package protocol implements the wire format for km-share's event
// stream: newline-delimited UTF-8 JSON frames, one event per line.
package protocol

// Kind tags which concrete event a frame carries. The string value is
// exactly the wire "type" field.
type Kind string

const (
	KindMouseMove       Kind = "mouse_move"
	KindMouseButton     Kind = "mouse_button"
	KindMouseScroll     Kind = "mouse_scroll"
	KindKey             Kind = "keyboard"
	KindControlTransfer Kind = "control_transfer"
)

// Event is any of the five frame shapes the wire protocol carries.
type Event interface {
	Kind() Kind
}

// Button names the fixed set of mouse buttons the wire protocol names.
type Button string

const (
	ButtonLeft   Button = "Button.left"
	ButtonRight  Button = "Button.right"
	ButtonMiddle Button = "Button.middle"
)

// KeyID is either a single printable character or a "Key.<name>" symbolic
// name drawn from the fixed table in keyid.go.
type KeyID string

// MouseMove carries absolute screen coordinates in the sender's frame.
type MouseMove struct {
	X, Y int
}

func (MouseMove) Kind() Kind { return KindMouseMove }

// MouseButton carries a press/release of a named button at a position.
type MouseButton struct {
	X, Y    int
	Button  Button
	Pressed bool
}

func (MouseButton) Kind() Kind { return KindMouseButton }

// MouseScroll carries a scroll delta at a position.
type MouseScroll struct {
	X, Y, DX, DY int
}

func (MouseScroll) Kind() Kind { return KindMouseScroll }

// Key carries a press/release of a key, printable or named.
type Key struct {
	Key     KeyID
	Pressed bool
}

func (Key) Kind() Kind { return KindKey }

// ControlTransfer is the out-of-band control-plane message multiplexed
// onto the same stream as input events.
type ControlTransfer struct {
	GiveControl     bool
	CursorX, CursorY int
}

func (ControlTransfer) Kind() Kind { return KindControlTransfer }
