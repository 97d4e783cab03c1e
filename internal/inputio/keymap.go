package inputio

import "github.com/ljchg12-hue/km-share/internal/protocol"

// specialKeyNames maps the fixed KeyID table to the key names robotgo's
// KeyDown/KeyUp expect (robotgo and gohook share this naming scheme
// internally, e.g. "space", "enter", "esc", "lshift", "f1"..."f12").
var specialKeyNames = map[protocol.KeyID]string{
	protocol.KeySpace:     "space",
	protocol.KeyTab:       "tab",
	protocol.KeyEnter:     "enter",
	protocol.KeyEsc:       "esc",
	protocol.KeyBackspace: "backspace",
	protocol.KeyDelete:    "delete",
	protocol.KeyShift:     "shift",
	protocol.KeyCtrl:      "ctrl",
	protocol.KeyAlt:       "alt",
	protocol.KeyMeta:      "cmd",
	protocol.KeyCapsLock:  "capslock",
	protocol.KeyUp:        "up",
	protocol.KeyDown:      "down",
	protocol.KeyLeft:      "left",
	protocol.KeyRight:     "right",
	protocol.KeyF1:        "f1",
	protocol.KeyF2:        "f2",
	protocol.KeyF3:        "f3",
	protocol.KeyF4:        "f4",
	protocol.KeyF5:        "f5",
	protocol.KeyF6:        "f6",
	protocol.KeyF7:        "f7",
	protocol.KeyF8:        "f8",
	protocol.KeyF9:        "f9",
	protocol.KeyF10:       "f10",
	protocol.KeyF11:       "f11",
	protocol.KeyF12:       "f12",
}

// keyIDToBackendName converts a wire KeyID into the string robotgo's
// KeyDown/KeyUp expects. Printable characters pass through unchanged;
// a special name missing from the table yields "", which SetKey drops
// silently, per §4.2's "unknown names on receive are dropped without
// error escalation."
func keyIDToBackendName(key protocol.KeyID) string {
	if key.IsSpecial() {
		if name, ok := specialKeyNames[key]; ok {
			return name
		}
		return ""
	}
	return string(key)
}

// buttonName converts a wire Button into the string robotgo's
// MouseDown/MouseUp/Click expect.
func buttonName(b protocol.Button) string {
	switch b {
	case protocol.ButtonLeft:
		return "left"
	case protocol.ButtonRight:
		return "right"
	case protocol.ButtonMiddle:
		return "middle"
	default:
		return ""
	}
}

// gohookButtonToWire converts gohook's numeric button code (1=left,
// 2=right, 3=middle, matching the teacher's own client-side mapping) to
// the wire Button name.
func gohookButtonToWire(code uint8) (protocol.Button, bool) {
	switch code {
	case 1:
		return protocol.ButtonLeft, true
	case 2:
		return protocol.ButtonRight, true
	case 3:
		return protocol.ButtonMiddle, true
	default:
		return "", false
	}
}
