package inputio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ljchg12-hue/km-share/internal/protocol"
)

func TestKeyIDToBackendNamePrintable(t *testing.T) {
	assert.Equal(t, "a", keyIDToBackendName(protocol.KeyID("a")))
}

func TestKeyIDToBackendNameSpecial(t *testing.T) {
	assert.Equal(t, "enter", keyIDToBackendName(protocol.KeyEnter))
	assert.Equal(t, "f12", keyIDToBackendName(protocol.KeyF12))
}

func TestKeyIDToBackendNameUnknownSpecialDropped(t *testing.T) {
	assert.Equal(t, "", keyIDToBackendName(protocol.KeyID("Key.nonsense")))
}

func TestButtonNameKnownAndUnknown(t *testing.T) {
	for _, b := range []protocol.Button{protocol.ButtonLeft, protocol.ButtonRight, protocol.ButtonMiddle} {
		assert.NotEmpty(t, buttonName(b))
	}
	assert.Equal(t, "", buttonName(protocol.Button("Button.nope")))
}

func TestGohookButtonToWire(t *testing.T) {
	cases := map[uint8]protocol.Button{1: protocol.ButtonLeft, 2: protocol.ButtonRight, 3: protocol.ButtonMiddle}
	for code, want := range cases {
		got, ok := gohookButtonToWire(code)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := gohookButtonToWire(9)
	assert.False(t, ok)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 100))
	assert.Equal(t, 100, clampInt(500, 0, 100))
	assert.Equal(t, 50, clampInt(50, 0, 100))
}
