package inputio

import (
	"log"

	"github.com/go-vgo/robotgo"

	"github.com/ljchg12-hue/km-share/internal/protocol"
)

// robotgoBackend is the concrete Backend: capture delegated to
// hookCapturer, synthesis driven directly by go-vgo/robotgo — the same
// library the teacher repo uses for every synth call (core/core.go,
// client/client.go: robotgo.Move, robotgo.MouseDown/Up, robotgo.Scroll,
// robotgo.KeyDown/Up).
type robotgoBackend struct {
	Capturer
	width, height int
	logger        *log.Logger
}

// NewBackend returns a Backend whose synthesis calls clamp to
// (width, height) per §4.2.
func NewBackend(width, height int, logger *log.Logger) Backend {
	if logger == nil {
		logger = log.Default()
	}
	return &robotgoBackend{
		Capturer: NewCapturer(logger),
		width:    width,
		height:   height,
		logger:   logger,
	}
}

func (b *robotgoBackend) clamp(x, y int) (int, int) {
	cx, cy := x, y
	if b.width > 0 {
		cx = clampInt(x, 0, b.width-1)
	}
	if b.height > 0 {
		cy = clampInt(y, 0, b.height-1)
	}
	return cx, cy
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (b *robotgoBackend) MoveMouse(x, y int) {
	defer b.recoverSynth("MoveMouse")
	cx, cy := b.clamp(x, y)
	robotgo.Move(cx, cy)
}

func (b *robotgoBackend) SetButton(button protocol.Button, pressed bool) {
	defer b.recoverSynth("SetButton")
	name := buttonName(button)
	if name == "" {
		return
	}
	if pressed {
		robotgo.MouseDown(name)
	} else {
		robotgo.MouseUp(name)
	}
}

func (b *robotgoBackend) Scroll(dx, dy int) {
	defer b.recoverSynth("Scroll")
	robotgo.Scroll(dx, dy)
}

func (b *robotgoBackend) SetKey(key protocol.KeyID, pressed bool) {
	defer b.recoverSynth("SetKey")
	name := keyIDToBackendName(key)
	if name == "" {
		return
	}
	if pressed {
		robotgo.KeyDown(name)
	} else {
		robotgo.KeyUp(name)
	}
}

// recoverSynth implements §4.5's failure semantics: synthesis failures
// are logged and the event is dropped; the FSM's state is never touched
// from here.
func (b *robotgoBackend) recoverSynth(op string) {
	if r := recover(); r != nil {
		b.logger.Printf("inputio: %s recovered from panic: %v", op, r)
	}
}
