package transport

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freePort asks the OS for an ephemeral TCP port and releases it
// immediately, accepting the small race in exchange for not hardcoding
// a port the test environment might already be using.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// TestEstablishSymmetric starts two Sessions at once, both listening on
// and dialing the same loopback port, mirroring both peers starting the
// tool at once (§4.4). Both must end up connected.
func TestEstablishSymmetric(t *testing.T) {
	port := freePort(t)

	sessA := New()
	sessB := New()
	defer sessA.Close()
	defer sessB.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	var errA, errB error
	go func() {
		defer wg.Done()
		errA = sessA.Establish(port, "127.0.0.1")
	}()
	go func() {
		defer wg.Done()
		errB = sessB.Establish(port, "127.0.0.1")
	}()

	wg.Wait()
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.True(t, sessA.Connected())
	assert.True(t, sessB.Connected())
}

// TestSendReceiveRoundTrip exercises Send on one side and Receive's
// frame callback on the other over a real loopback TCP connection.
func TestSendReceiveRoundTrip(t *testing.T) {
	port := freePort(t)

	server := New()
	defer server.Close()
	client := New()
	defer client.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = server.Establish(port, "127.0.0.1")
	}()
	go func() {
		defer wg.Done()
		time.Sleep(50 * time.Millisecond)
		_ = client.Establish(port, "127.0.0.1")
	}()
	wg.Wait()

	require.True(t, server.Connected())
	require.True(t, client.Connected())

	received := make(chan []byte, 1)
	go func() {
		_ = client.Receive(func(frame []byte) {
			received <- append([]byte(nil), frame...)
		})
	}()

	require.NoError(t, server.Send([]byte("hello\n")))

	select {
	case frame := <-received:
		assert.Equal(t, "hello", string(frame))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

// TestSendOnUnconnectedSessionErrors covers the not-connected error path.
func TestSendOnUnconnectedSessionErrors(t *testing.T) {
	s := New()
	err := s.Send([]byte("x"))
	assert.Error(t, err)
}

// TestReceiveOnUnconnectedSessionErrors covers the not-connected error path.
func TestReceiveOnUnconnectedSessionErrors(t *testing.T) {
	s := New()
	err := s.Receive(func([]byte) {})
	assert.Error(t, err)
}

// TestCloseIsIdempotent ensures calling Close twice never panics.
func TestCloseIsIdempotent(t *testing.T) {
	s := New()
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
