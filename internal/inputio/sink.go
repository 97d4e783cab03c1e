// Package inputio is the platform-abstracted global capture and
// synthesis backend: the Input Backend of the component design. It wraps
// two third-party libraries — robotn/gohook for capture, go-vgo/robotgo
// for synthesis — behind interfaces so the rest of the tree never
// imports them directly.
package inputio

import "github.com/ljchg12-hue/km-share/internal/protocol"

// Sink receives captured input events. The orchestrator implements this
// to gate and forward events through the control FSM and codec.
type Sink interface {
	OnMouseMove(x, y int)
	OnMouseButton(x, y int, button protocol.Button, pressed bool)
	OnMouseScroll(x, y, dx, dy int)
	OnKey(key protocol.KeyID, pressed bool)
}

// Capturer installs global input listeners and reports captured events
// to a Sink. Start/Stop are idempotent: starting twice is a no-op,
// stopping twice is a no-op, and a Stop followed by a Start must work.
type Capturer interface {
	Start(sink Sink) error
	Stop() error
}

// Synthesizer injects input locally. All coordinate-taking calls
// tolerate out-of-range values by clamping to the backend's configured
// display bounds.
type Synthesizer interface {
	MoveMouse(x, y int)
	SetButton(button protocol.Button, pressed bool)
	Scroll(dx, dy int)
	SetKey(key protocol.KeyID, pressed bool)
}

// Backend is the full capability surface: capture plus synthesis.
type Backend interface {
	Capturer
	Synthesizer
}
