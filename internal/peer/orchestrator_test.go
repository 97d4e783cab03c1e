package peer

import (
	"sync"

	"github.com/ljchg12-hue/km-share/internal/inputio"
	"github.com/ljchg12-hue/km-share/internal/protocol"
)

// fakeBackend records every synthesis call and lets tests drive capture
// callbacks directly, standing in for the platform inputio.Backend.
type fakeBackend struct {
	mu      sync.Mutex
	sink    inputio.Sink
	moves   []point
	buttons []buttonCall
	scrolls []point
	keys    []keyCall
	started bool
	stopped bool
}

type point struct{ X, Y int }
type buttonCall struct {
	Button  protocol.Button
	Pressed bool
}
type keyCall struct {
	Key     protocol.KeyID
	Pressed bool
}

func (f *fakeBackend) Start(sink inputio.Sink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sink = sink
	f.started = true
	return nil
}

func (f *fakeBackend) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeBackend) MoveMouse(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, point{x, y})
}

func (f *fakeBackend) SetButton(button protocol.Button, pressed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buttons = append(f.buttons, buttonCall{button, pressed})
}

func (f *fakeBackend) Scroll(dx, dy int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolls = append(f.scrolls, point{dx, dy})
}

func (f *fakeBackend) SetKey(key protocol.KeyID, pressed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, keyCall{key, pressed})
}
