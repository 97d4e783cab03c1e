package inputio

import (
	"errors"
	"fmt"
	"log"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/ljchg12-hue/km-share/internal/kmerr"
	"github.com/ljchg12-hue/km-share/internal/protocol"
)

// hookCapturer installs global listeners via robotn/gohook, the same
// library the teacher repo uses for capture (core/hook.go). Start/Stop
// are idempotent; a panic from the underlying hook runtime (observed in
// practice on permission-denied or no-display-server environments) is
// recovered and reported as an InputBackendError rather than crashing
// the process, putting the backend in degraded inject-only mode.
type hookCapturer struct {
	mu      sync.Mutex
	running bool
	logger  *log.Logger
}

// NewCapturer returns a Capturer backed by the global gohook listener.
func NewCapturer(logger *log.Logger) Capturer {
	if logger == nil {
		logger = log.Default()
	}
	return &hookCapturer{logger: logger}
}

func (c *hookCapturer) Start(sink Sink) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}
	if sink == nil {
		return kmerr.NewInputBackendError("capture.Start", errors.New("nil sink"))
	}

	if err := c.registerAndRun(sink); err != nil {
		return kmerr.NewInputBackendError("capture.Start", err)
	}
	c.running = true
	return nil
}

func (c *hookCapturer) registerAndRun(sink Sink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gohook panicked during registration: %v", r)
		}
	}()

	hook.Register(hook.MouseMove, []string{}, func(e hook.Event) {
		sink.OnMouseMove(int(e.X), int(e.Y))
	})
	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		if btn, ok := gohookButtonToWire(e.Button); ok {
			sink.OnMouseButton(int(e.X), int(e.Y), btn, true)
		}
	})
	hook.Register(hook.MouseUp, []string{}, func(e hook.Event) {
		if btn, ok := gohookButtonToWire(e.Button); ok {
			sink.OnMouseButton(int(e.X), int(e.Y), btn, false)
		}
	})
	hook.Register(hook.MouseWheel, []string{}, func(e hook.Event) {
		dx, dy := 0, 0
		// libuiohook (which gohook wraps) reports vertical wheel events
		// with Direction==3, horizontal with Direction==4.
		if e.Direction == 4 {
			dx = int(e.Rotation)
		} else {
			dy = int(e.Rotation)
		}
		sink.OnMouseScroll(int(e.X), int(e.Y), dx, dy)
	})
	hook.Register(hook.KeyDown, []string{}, func(e hook.Event) {
		if key := rawcodeToKeyID(e); key != "" {
			sink.OnKey(key, true)
		}
	})
	hook.Register(hook.KeyUp, []string{}, func(e hook.Event) {
		if key := rawcodeToKeyID(e); key != "" {
			sink.OnKey(key, false)
		}
	})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Printf("capture: hook loop recovered from panic: %v", r)
			}
		}()
		s := hook.Start()
		<-hook.Process(s)
	}()

	return nil
}

func (c *hookCapturer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Printf("capture: stop recovered from panic: %v", r)
			}
		}()
		hook.End()
	}()

	c.running = false
	return nil
}

// rawcodeToKeyID converts a gohook key event to a wire KeyID: the
// printable character when gohook resolved one (mirroring the teacher's
// own hook.RawcodetoKeychar usage), otherwise the named special key if
// the raw scan code is one we track (rawcode.go), otherwise empty —
// callers skip empty KeyIDs per §4.2's "unknown names on receive are
// dropped without error escalation."
func rawcodeToKeyID(e hook.Event) protocol.KeyID {
	if ch := hook.RawcodetoKeychar(e.Rawcode); ch != "" && ch != "\x00" {
		return protocol.KeyID(ch)
	}
	if special, ok := rawcodeToSpecial[e.Rawcode]; ok {
		return special
	}
	return ""
}
