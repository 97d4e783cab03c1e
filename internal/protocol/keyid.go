package protocol

import "strings"

// Fixed table of named special keys. The source application (Mouse
// without Borders-style KM sharing) never enumerated these; this table
// is the resolution of that open question, picked to cover ordinary
// editing and navigation without inventing platform-specific extras.
const (
	KeySpace     KeyID = "Key.space"
	KeyTab       KeyID = "Key.tab"
	KeyEnter     KeyID = "Key.enter"
	KeyEsc       KeyID = "Key.esc"
	KeyBackspace KeyID = "Key.backspace"
	KeyDelete    KeyID = "Key.delete"
	KeyShift     KeyID = "Key.shift"
	KeyCtrl      KeyID = "Key.ctrl"
	KeyAlt       KeyID = "Key.alt"
	KeyMeta      KeyID = "Key.meta"
	KeyCapsLock  KeyID = "Key.capslock"
	KeyUp        KeyID = "Key.up"
	KeyDown      KeyID = "Key.down"
	KeyLeft      KeyID = "Key.left"
	KeyRight     KeyID = "Key.right"
	KeyF1        KeyID = "Key.f1"
	KeyF2        KeyID = "Key.f2"
	KeyF3        KeyID = "Key.f3"
	KeyF4        KeyID = "Key.f4"
	KeyF5        KeyID = "Key.f5"
	KeyF6        KeyID = "Key.f6"
	KeyF7        KeyID = "Key.f7"
	KeyF8        KeyID = "Key.f8"
	KeyF9        KeyID = "Key.f9"
	KeyF10       KeyID = "Key.f10"
	KeyF11       KeyID = "Key.f11"
	KeyF12       KeyID = "Key.f12"
)

// IsSpecial reports whether k is a named "Key.<name>" key rather than a
// single printable character.
func (k KeyID) IsSpecial() bool {
	return strings.HasPrefix(string(k), "Key.")
}

// Name strips the "Key." prefix from a special key, or returns the
// printable character unchanged.
func (k KeyID) Name() string {
	return strings.TrimPrefix(string(k), "Key.")
}
