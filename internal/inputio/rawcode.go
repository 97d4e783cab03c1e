package inputio

import "github.com/ljchg12-hue/km-share/internal/protocol"

// rawcodeToSpecial resolves the subset of libuiohook's raw scan codes
// (the scheme gohook reports Rawcode in) that correspond to our fixed
// special-key table. This is this repo's resolution of §9's open
// question ("implementers must agree on a fixed table across hosts") —
// printable keys never reach this table; they're resolved by
// hook.RawcodetoKeychar before we get here.
var rawcodeToSpecial = map[uint16]protocol.KeyID{
	0x0001: protocol.KeyEsc,
	0x000E: protocol.KeyBackspace,
	0x000F: protocol.KeyTab,
	0x001C: protocol.KeyEnter,
	0x001D: protocol.KeyCtrl,
	0x002A: protocol.KeyShift,
	0x0036: protocol.KeyShift,
	0x0038: protocol.KeyAlt,
	0x0039: protocol.KeySpace,
	0x003A: protocol.KeyCapsLock,
	0x003B: protocol.KeyF1,
	0x003C: protocol.KeyF2,
	0x003D: protocol.KeyF3,
	0x003E: protocol.KeyF4,
	0x003F: protocol.KeyF5,
	0x0040: protocol.KeyF6,
	0x0041: protocol.KeyF7,
	0x0042: protocol.KeyF8,
	0x0043: protocol.KeyF9,
	0x0044: protocol.KeyF10,
	0x0057: protocol.KeyF11,
	0x0058: protocol.KeyF12,
	0xE048: protocol.KeyUp,
	0xE050: protocol.KeyDown,
	0xE04B: protocol.KeyLeft,
	0xE04D: protocol.KeyRight,
	0xE053: protocol.KeyDelete,
	0xE05B: protocol.KeyMeta,
}
