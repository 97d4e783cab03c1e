// Package peer wires transport, protocol, control and inputio together
// into the single running session: the Peer Orchestrator of the
// component design (§4.6).
package peer

import (
	"log"
	"time"

	"github.com/ljchg12-hue/km-share/internal/control"
	"github.com/ljchg12-hue/km-share/internal/inputio"
	"github.com/ljchg12-hue/km-share/internal/protocol"
	"github.com/ljchg12-hue/km-share/internal/transport"
)

// postHandoverSettle is the brief pause between a handover completing
// and capture resuming, giving the OS cursor warp time to land before
// the next poll reads a position (mirrors the source tool's 0.1s sleep
// after a transfer).
const postHandoverSettle = 100 * time.Millisecond

// Callbacks notifies the embedding application of state changes it may
// want to surface (tray icon, log line, UI).
type Callbacks struct {
	OnConnectionChanged func(connected bool)
	OnControlChanged    func(hasControl bool)
}

// Config is what the orchestrator needs to establish and run a session.
type Config struct {
	Port          int
	PeerAddr      string
	Local         control.Geometry
	Remote        control.Geometry
	Layout        control.Layout
	EdgeDetection bool
}

// Orchestrator owns one session's transport, FSM, and input backend for
// its lifetime.
type Orchestrator struct {
	cfg       Config
	session   *transport.Session
	fsm       *control.FSM
	backend   inputio.Backend
	callbacks Callbacks
	logger    *log.Logger

	stopCh chan struct{}
}

// New builds an Orchestrator. backend is the platform capture/synth
// implementation; tests substitute a fake.
func New(cfg Config, backend inputio.Backend, callbacks Callbacks, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		cfg:       cfg,
		session:   transport.New(),
		fsm:       control.New(cfg.Local, cfg.Remote, cfg.Layout, cfg.EdgeDetection),
		backend:   backend,
		callbacks: callbacks,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start establishes the session and begins the receive loop and input
// capture. It blocks until the session is established (or both listener
// and dialer attempts are exhausted).
func (o *Orchestrator) Start() error {
	if err := o.session.Establish(o.cfg.Port, o.cfg.PeerAddr); err != nil {
		return err
	}
	o.notifyConnection(true)

	go o.receiveLoop()

	// Both sides start as Owner (control.New), so capture begins
	// immediately unless something already demoted this side to
	// Passive before the session came up; no settle delay is needed
	// here — postHandoverSettle only applies after a live handover
	// (§4.5 transition 3).
	if o.fsm.HasControl() {
		o.startCapture()
	}
	return nil
}

// Stop tears down capture and the session.
func (o *Orchestrator) Stop() {
	close(o.stopCh)
	o.stopCapture()
	o.session.Close()
	o.notifyConnection(false)
}

// SetLayout forwards a layout change to the FSM of the live session; no
// reconnect is needed.
func (o *Orchestrator) SetLayout(layout control.Layout) {
	o.fsm.SetLayout(layout)
}

func (o *Orchestrator) notifyConnection(connected bool) {
	if o.callbacks.OnConnectionChanged != nil {
		o.callbacks.OnConnectionChanged(connected)
	}
}

func (o *Orchestrator) notifyControl(hasControl bool) {
	if o.callbacks.OnControlChanged != nil {
		o.callbacks.OnControlChanged(hasControl)
	}
}

// sendEvent encodes and transmits ev, logging and dropping on failure
// per §4.5 — a send error never crashes the session, it's surfaced on
// the next receive/establish attempt instead.
func (o *Orchestrator) sendEvent(ev protocol.Event) {
	data, err := protocol.Encode(ev)
	if err != nil {
		o.logger.Printf("peer: encode failed: %v", err)
		return
	}
	if err := o.session.Send(data); err != nil {
		o.logger.Printf("peer: send failed: %v", err)
	}
}

// --- inputio.Sink: gates captured local events through the FSM (P6) ---

func (o *Orchestrator) OnMouseMove(x, y int) {
	if remoteX, remoteY, ok := o.fsm.TryHandover(time.Now(), x, y); ok {
		o.sendEvent(protocol.ControlTransfer{GiveControl: true, CursorX: remoteX, CursorY: remoteY})
		o.stopCapture()
		o.notifyControl(false)
		return
	}
	if !o.fsm.HasControl() {
		return
	}
	o.sendEvent(protocol.MouseMove{X: x, Y: y})
}

func (o *Orchestrator) OnMouseButton(x, y int, button protocol.Button, pressed bool) {
	if !o.fsm.HasControl() {
		return
	}
	o.sendEvent(protocol.MouseButton{X: x, Y: y, Button: button, Pressed: pressed})
}

func (o *Orchestrator) OnMouseScroll(x, y, dx, dy int) {
	if !o.fsm.HasControl() {
		return
	}
	o.sendEvent(protocol.MouseScroll{X: x, Y: y, DX: dx, DY: dy})
}

func (o *Orchestrator) OnKey(key protocol.KeyID, pressed bool) {
	if !o.fsm.HasControl() {
		return
	}
	o.sendEvent(protocol.Key{Key: key, Pressed: pressed})
}

// --- Receive loop: gates inbound synthesis through the FSM (P7) ---

// receiveLoop reuses transport's own newline framing and decodes each
// complete frame directly: the two-stage Feed/Next decoder is for
// consumers (like the codec's own tests) that receive raw, unframed
// byte chunks, which the session's Receive never hands out.
func (o *Orchestrator) receiveLoop() {
	err := o.session.Receive(func(frame []byte) {
		ev, err := protocol.DecodeFrame(frame)
		if err != nil {
			o.logger.Printf("peer: decode failed: %v", err)
			return
		}
		o.handleInbound(ev)
	})
	if err != nil {
		select {
		case <-o.stopCh:
			// Stop closed the socket and reports the disconnect itself.
			return
		default:
		}
		o.logger.Printf("peer: receive loop ended: %v", err)
		o.notifyConnection(false)
	}
}

func (o *Orchestrator) handleInbound(ev protocol.Event) {
	switch e := ev.(type) {
	case protocol.ControlTransfer:
		hasControl := o.fsm.ReceiveControlTransfer(e.GiveControl, time.Now())
		if hasControl {
			// The sender already remapped the cursor into this side's
			// frame (control.LocalToRemote), so it is applied as is.
			o.backend.MoveMouse(e.CursorX, e.CursorY)
			time.Sleep(postHandoverSettle)
			o.startCapture()
		} else {
			o.stopCapture()
		}
		o.notifyControl(hasControl)
	case protocol.MouseMove:
		if o.fsm.HasControl() {
			return
		}
		localX, localY := o.fsm.RemoteToLocal(e.X, e.Y)
		o.backend.MoveMouse(localX, localY)
	case protocol.MouseButton:
		if o.fsm.HasControl() {
			return
		}
		o.backend.SetButton(e.Button, e.Pressed)
	case protocol.MouseScroll:
		if o.fsm.HasControl() {
			return
		}
		o.backend.Scroll(e.DX, e.DY)
	case protocol.Key:
		if o.fsm.HasControl() {
			return
		}
		o.backend.SetKey(e.Key, e.Pressed)
	}
}

// startCapture and stopCapture drive the real platform hook per §4.2's
// idempotent-restart contract on every ownership handover (§4.5
// transitions 2c and 3), on top of the Sink-layer gating above.
func (o *Orchestrator) startCapture() {
	if err := o.backend.Start(o); err != nil {
		o.logger.Printf("peer: capture start failed: %v", err)
	}
}

func (o *Orchestrator) stopCapture() {
	if err := o.backend.Stop(); err != nil {
		o.logger.Printf("peer: capture stop failed: %v", err)
	}
}
