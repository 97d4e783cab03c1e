package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljchg12-hue/km-share/internal/protocol"
)

// P1 — codec round trip.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []protocol.Event{
		protocol.MouseMove{X: 10, Y: 20},
		protocol.MouseButton{X: 1, Y: 2, Button: protocol.ButtonLeft, Pressed: true},
		protocol.MouseButton{X: 1, Y: 2, Button: protocol.ButtonRight, Pressed: false},
		protocol.MouseScroll{X: 5, Y: 5, DX: -1, DY: 3},
		protocol.Key{Key: "a", Pressed: true},
		protocol.Key{Key: protocol.KeyEnter, Pressed: false},
		protocol.ControlTransfer{GiveControl: true, CursorX: 150, CursorY: 500},
	}

	for _, want := range cases {
		line, err := protocol.Encode(want)
		require.NoError(t, err)
		assert.True(t, len(line) > 0 && line[len(line)-1] == '\n', "frame must end with exactly one newline")

		got, err := protocol.DecodeFrame(line[:len(line)-1])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeWireSchema(t *testing.T) {
	line, err := protocol.Encode(protocol.ControlTransfer{GiveControl: true, CursorX: 150, CursorY: 500})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"control_transfer","give_control":true,"cursor_x":150,"cursor_y":500}`, string(line[:len(line)-1]))
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := protocol.DecodeFrame([]byte(`{"type":"frobnicate"}`))
	require.Error(t, err)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := protocol.DecodeFrame([]byte(`{"bad":`))
	require.Error(t, err)
}

// P2 — framing: concatenated frames, arbitrarily rechunked, yield
// exactly the original sequence back out.
func TestDecoderFramingArbitraryChunking(t *testing.T) {
	events := []protocol.Event{
		protocol.MouseMove{X: 1, Y: 2},
		protocol.MouseMove{X: 3, Y: 4},
		protocol.MouseMove{X: 5, Y: 6},
	}
	var full []byte
	for _, e := range events {
		line, err := protocol.Encode(e)
		require.NoError(t, err)
		full = append(full, line...)
	}

	// Rechunk at awkward byte boundaries, including mid-frame splits.
	chunkSizes := []int{1, 7, 3, 100, 2}
	d := protocol.NewDecoder()
	var got []protocol.Event
	pos := 0
	ci := 0
	for pos < len(full) {
		size := chunkSizes[ci%len(chunkSizes)]
		ci++
		end := pos + size
		if end > len(full) {
			end = len(full)
		}
		d.Feed(full[pos:end])
		pos = end

		for {
			ev, err, ok := d.Next()
			if !ok {
				break
			}
			require.NoError(t, err)
			got = append(got, ev)
		}
	}

	assert.Equal(t, events, got)
	assert.False(t, d.Pending())
}

// Scenario 5 — framing robustness: one malformed frame sandwiched
// between two valid ones must not derail the stream.
func TestDecoderDropsOnlyBadFrame(t *testing.T) {
	d := protocol.NewDecoder()
	d.Feed([]byte(`{"type":"mouse_move","x":1,"y":2}` + "\n" + `{"bad":`))
	d.Feed([]byte(`json}` + "\n" + `{"type":"mouse_move","x":3,"y":4}` + "\n"))

	var got []protocol.Event
	var errs int
	for {
		ev, err, ok := d.Next()
		if !ok {
			break
		}
		if err != nil {
			errs++
			continue
		}
		got = append(got, ev)
	}

	assert.Equal(t, 1, errs)
	assert.Equal(t, []protocol.Event{
		protocol.MouseMove{X: 1, Y: 2},
		protocol.MouseMove{X: 3, Y: 4},
	}, got)
	assert.False(t, d.Pending())
}
