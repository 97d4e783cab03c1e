// Package transport implements the session channel: a single TCP
// connection between two peers, established by each side simultaneously
// listening and dialing the other (§4.4) so either side can act first
// regardless of which one a human happens to start.
package transport

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ljchg12-hue/km-share/internal/kmerr"
)

const (
	acceptPoll    = time.Second
	dialTimeout   = 5 * time.Second
	dialRetries   = 3
	dialSpacing   = 2 * time.Second
	readBufStart  = 4096
)

// Session is the single active connection to the peer. Only one
// connection survives per §4.4 (P8): whichever side's Accept or Dial
// completes first wins, and a second inbound connection is closed
// immediately.
type Session struct {
	mu        sync.Mutex
	conn      net.Conn
	connected atomic.Bool

	listener net.Listener
}

// New returns an unconnected Session.
func New() *Session {
	return &Session{}
}

// Connected reports whether the session currently has a live connection.
func (s *Session) Connected() bool {
	return s.connected.Load()
}

// Establish races a listener and a dialer against the given peer
// address and port, returning once one of them succeeds or both have
// given up (the listener could not bind and the dialer used all its
// attempts). There is no overall timeout; callers should not call this
// twice concurrently.
func (s *Session) Establish(port int, peerAddr string) error {
	result := make(chan net.Conn, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.acceptLoop(port, result)
	}()
	go func() {
		defer wg.Done()
		s.dialLoop(fmt.Sprintf("%s:%d", peerAddr, port), result)
	}()
	go func() {
		wg.Wait()
		close(result)
	}()

	conn, ok := <-result
	if !ok || conn == nil {
		return kmerr.NewTransportError("establish", fmt.Errorf("no connection established"))
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.connected.Store(true)

	// Drain and close anything that arrives afterward: only one
	// connection survives (P8).
	go s.rejectLateArrivals(result)

	return nil
}

func (s *Session) acceptLoop(port int, result chan<- net.Conn) {
	ln, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	for {
		if tcpLn, ok := ln.(*net.TCPListener); ok {
			tcpLn.SetDeadline(time.Now().Add(acceptPoll))
		}
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return
		}
		if s.connected.Load() {
			conn.Close()
			continue
		}
		select {
		case result <- conn:
		default:
			conn.Close()
		}
	}
}

func (s *Session) dialLoop(addr string, result chan<- net.Conn) {
	for attempt := 0; attempt < dialRetries; attempt++ {
		if s.connected.Load() {
			return
		}
		conn, err := net.DialTimeout("tcp", addr, dialTimeout)
		if err == nil {
			if s.connected.Load() {
				conn.Close()
				return
			}
			select {
			case result <- conn:
			default:
				conn.Close()
			}
			return
		}
		time.Sleep(dialSpacing)
	}
}

// rejectLateArrivals closes any connection that shows up on result
// after the winning one, implementing "accepted then immediately
// closed" for a second inbound peer (P8).
func (s *Session) rejectLateArrivals(result <-chan net.Conn) {
	for conn := range result {
		if conn != nil {
			conn.Close()
		}
	}
}

// Send writes the full buffer to the peer. Best-effort: a write error
// marks the session disconnected and is returned as a *kmerr.TransportError.
func (s *Session) Send(data []byte) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return kmerr.NewTransportError("send", fmt.Errorf("not connected"))
	}
	if _, err := conn.Write(data); err != nil {
		s.markDisconnected()
		return kmerr.NewTransportError("send", err)
	}
	return nil
}

// Receive runs a blocking read loop, invoking onFrame once per
// newline-delimited frame (partial trailing bytes are retained across
// reads, matching the protocol decoder's Feed/Next framing). It returns
// when the connection is closed or an error occurs.
func (s *Session) Receive(onFrame func([]byte)) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return kmerr.NewTransportError("receive", fmt.Errorf("not connected"))
	}

	reader := bufio.NewReaderSize(conn, readBufStart)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			onFrame(bytes.TrimRight(line, "\n"))
		}
		if err != nil {
			s.markDisconnected()
			return kmerr.NewTransportError("receive", err)
		}
	}
}

func (s *Session) markDisconnected() {
	s.connected.Store(false)
}

// Close tears down the connection and listener on every exit path.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected.Store(false)
	var firstErr error
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			firstErr = err
		}
		s.conn = nil
	}
	if s.listener != nil {
		s.listener.Close()
		s.listener = nil
	}
	return firstErr
}
