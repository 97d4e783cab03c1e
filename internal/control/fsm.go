package control

import (
	"sync"
	"time"
)

// EdgeThreshold is the pixel band inside the active screen whose
// violation triggers handover.
const EdgeThreshold = 20

// SafeInset is the offset at which the remote cursor is placed after
// handover, chosen so the remote side doesn't immediately re-trigger its
// own mirror edge.
const SafeInset = 150

// Cooldown suppresses repeated handovers in quick succession.
const Cooldown = 500 * time.Millisecond

// State is which half of the token state machine a side is in.
type State int

const (
	Passive State = iota
	Owner
)

// EdgePredicate reports whether (x, y), in the local screen of size
// (lw, lh), has crossed the configured edge for layout. Pure function of
// its inputs — see P3.
func EdgePredicate(layout Layout, lw, lh, x, y int) bool {
	switch layout.Position {
	case Right:
		return x >= lw-EdgeThreshold
	case Left:
		return x <= EdgeThreshold
	case Bottom:
		return y >= lh-EdgeThreshold
	case Top:
		return y <= EdgeThreshold
	default:
		return false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LocalToRemote maps a local coordinate, owned by the Owner side, to the
// peer's screen using the safe inset on the axis that crosses the edge
// and linear scaling on the other. Pure and idempotent given its inputs
// (I3); the returned point never satisfies the mirror edge predicate at
// the peer with the standard 20px threshold (P5).
func LocalToRemote(layout Layout, local, remote Geometry, x, y int) (int, int) {
	x = clamp(x, 0, local.Width-1)
	y = clamp(y, 0, local.Height-1)

	switch layout.Position {
	case Right:
		return SafeInset, y * remote.Height / local.Height
	case Left:
		return remote.Width - SafeInset, y * remote.Height / local.Height
	case Bottom:
		return x * remote.Width / local.Width, SafeInset
	case Top:
		return x * remote.Width / local.Width, remote.Height - SafeInset
	default:
		return x, y
	}
}

// RemoteToLocal maps a coordinate arriving from the remote (continuous
// motion while Passive) into the local frame by linear scaling.
func RemoteToLocal(remote, local Geometry, x, y int) (int, int) {
	return x * local.Width / remote.Width, y * local.Height / remote.Height
}

// FSM is the stateful wrapper around the pure predicate/remap functions:
// it owns has_control, the cooldown anchor, and the geometry/layout
// snapshot taken at session start (I3 — these never change mid-session
// except via SetLayout, which the orchestrator calls on an explicit
// config update, or SetRemoteGeometry; neither is a renegotiation).
type FSM struct {
	mu             sync.Mutex
	hasControl     bool
	lastTransferAt time.Time
	local          Geometry
	remote         Geometry
	layout         Layout
	edgeDetection  bool
}

// New creates an FSM. Both sides start as Owner on connection — a
// deliberate symmetric race the source application also has; see
// SPEC_FULL.md §9 for why this repo keeps it.
func New(local, remote Geometry, layout Layout, edgeDetection bool) *FSM {
	return &FSM{
		hasControl:    true,
		local:         local,
		remote:        remote,
		layout:        layout,
		edgeDetection: edgeDetection,
	}
}

// HasControl reports whether this side currently owns input (I1).
func (f *FSM) HasControl() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasControl
}

// SetLayout propagates a layout change to a live session without
// requiring a reconnect.
func (f *FSM) SetLayout(layout Layout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layout = layout
}

// SetRemoteGeometry updates the peer's screen size used for remap.
func (f *FSM) SetRemoteGeometry(g Geometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote = g
}

// TryHandover evaluates the edge predicate against the triggering mouse
// position. If edge detection is disabled, control isn't held, or the
// predicate doesn't fire, or the cooldown is still active, it returns
// ok=false and the caller forwards the move event as usual. Otherwise it
// computes the remap, flips the local token to Passive, stamps the
// cooldown anchor, and returns ok=true — the caller must send the
// ControlTransfer frame and must NOT forward the triggering move.
func (f *FSM) TryHandover(now time.Time, x, y int) (remoteX, remoteY int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.edgeDetection || !f.hasControl {
		return 0, 0, false
	}
	if now.Sub(f.lastTransferAt) < Cooldown {
		return 0, 0, false
	}
	if !EdgePredicate(f.layout, f.local.Width, f.local.Height, x, y) {
		return 0, 0, false
	}

	remoteX, remoteY = LocalToRemote(f.layout, f.local, f.remote, x, y)
	f.hasControl = false
	f.lastTransferAt = now
	return remoteX, remoteY, true
}

// ReceiveControlTransfer applies an inbound control_transfer message,
// honored regardless of cooldown or input-backend health (§4.5 failure
// semantics). Per §5, the receiver writes has_control only — the
// cooldown anchor is owned by the side that initiates a handover, not
// the side that receives one. Returns the new has_control value.
func (f *FSM) ReceiveControlTransfer(giveControl bool, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasControl = giveControl
	return f.hasControl
}

// RemoteToLocal maps an inbound remote coordinate into this side's frame
// using the session's frozen geometry snapshot.
func (f *FSM) RemoteToLocal(x, y int) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return RemoteToLocal(f.remote, f.local, x, y)
}
