package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ljchg12-hue/km-share/internal/kmerr"
)

// rawFrame is the union of every field any wire frame may carry. Encode
// never emits a frame through this type directly — each Event kind is
// marshaled from its own minimal struct so the bytes on the wire match
// §6's schema exactly. Decode unmarshals into rawFrame once and then
// narrows by Type.
type rawFrame struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Button      string `json:"button"`
	Pressed     bool   `json:"pressed"`
	DX          int    `json:"dx"`
	DY          int    `json:"dy"`
	Key         string `json:"key"`
	GiveControl bool   `json:"give_control"`
	CursorX     int    `json:"cursor_x"`
	CursorY     int    `json:"cursor_y"`
}

// Encode serializes an Event to a single newline-terminated JSON frame.
func Encode(e Event) ([]byte, error) {
	var body interface{}
	switch v := e.(type) {
	case MouseMove:
		body = struct {
			Type string `json:"type"`
			X    int    `json:"x"`
			Y    int    `json:"y"`
		}{string(KindMouseMove), v.X, v.Y}
	case MouseButton:
		body = struct {
			Type    string `json:"type"`
			X       int    `json:"x"`
			Y       int    `json:"y"`
			Button  string `json:"button"`
			Pressed bool   `json:"pressed"`
		}{string(KindMouseButton), v.X, v.Y, string(v.Button), v.Pressed}
	case MouseScroll:
		body = struct {
			Type string `json:"type"`
			X    int    `json:"x"`
			Y    int    `json:"y"`
			DX   int    `json:"dx"`
			DY   int    `json:"dy"`
		}{string(KindMouseScroll), v.X, v.Y, v.DX, v.DY}
	case Key:
		body = struct {
			Type    string `json:"type"`
			Key     string `json:"key"`
			Pressed bool   `json:"pressed"`
		}{string(KindKey), string(v.Key), v.Pressed}
	case ControlTransfer:
		body = struct {
			Type        string `json:"type"`
			GiveControl bool   `json:"give_control"`
			CursorX     int    `json:"cursor_x"`
			CursorY     int    `json:"cursor_y"`
		}{string(KindControlTransfer), v.GiveControl, v.CursorX, v.CursorY}
	default:
		return nil, fmt.Errorf("protocol: unknown event type %T", e)
	}

	line, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	line = append(line, '\n')
	return line, nil
}

// DecodeFrame parses one complete frame (without its trailing newline).
// Malformed JSON or an unrecognized type tag is reported as a
// *kmerr.DecodeError; the caller drops the frame and keeps reading.
func DecodeFrame(line []byte) (Event, error) {
	var raw rawFrame
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, kmerr.NewDecodeError(line, err)
	}

	switch Kind(raw.Type) {
	case KindMouseMove:
		return MouseMove{X: raw.X, Y: raw.Y}, nil
	case KindMouseButton:
		return MouseButton{X: raw.X, Y: raw.Y, Button: Button(raw.Button), Pressed: raw.Pressed}, nil
	case KindMouseScroll:
		return MouseScroll{X: raw.X, Y: raw.Y, DX: raw.DX, DY: raw.DY}, nil
	case KindKey:
		return Key{Key: KeyID(raw.Key), Pressed: raw.Pressed}, nil
	case KindControlTransfer:
		return ControlTransfer{GiveControl: raw.GiveControl, CursorX: raw.CursorX, CursorY: raw.CursorY}, nil
	default:
		return nil, kmerr.NewDecodeError(line, fmt.Errorf("unknown frame type %q", raw.Type))
	}
}

// Decoder incrementally splits an arbitrarily-chunked byte stream into
// complete frames. Feed appends bytes as they arrive over the wire; Next
// pops and decodes the next complete line, retaining any partial
// trailing bytes across calls.
type Decoder struct {
	buf []byte
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends newly received bytes to the internal buffer.
func (d *Decoder) Feed(data []byte) {
	d.buf = append(d.buf, data...)
}

// Next returns the next decoded frame and whether one was available. If
// ok is false, the buffer held no complete line and the caller should
// Feed more data. A non-nil error with ok true means a frame was present
// but malformed — the stream remains usable, just drop it and call Next
// again.
func (d *Decoder) Next() (ev Event, err error, ok bool) {
	idx := bytes.IndexByte(d.buf, '\n')
	if idx < 0 {
		return nil, nil, false
	}
	line := d.buf[:idx]
	d.buf = d.buf[idx+1:]
	ev, err = DecodeFrame(line)
	return ev, err, true
}

// Pending reports whether a partial (unterminated) frame remains buffered.
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}
