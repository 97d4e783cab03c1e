package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljchg12-hue/km-share/internal/control"
)

func validArgs() Args {
	return Args{
		LocalWidth:    1920,
		LocalHeight:   1080,
		RemoteIP:      "192.168.1.20",
		RemotePort:    12345,
		RemoteWidth:   2560,
		RemoteHeight:  1440,
		Layout:        "right",
		EdgeDetection: true,
		Port:          12345,
		DiscoveryPort: 12346,
		Name:          "desk-a",
	}
}

func TestFromArgsHappyPath(t *testing.T) {
	settings, err := FromArgs(validArgs())
	require.NoError(t, err)
	assert.Equal(t, control.Geometry{Width: 1920, Height: 1080}, settings.Local)
	assert.Equal(t, 2560, settings.Remote.Width)
	assert.Equal(t, control.Right, settings.Layout.Position)
	assert.Equal(t, "desk-a", settings.Name)
}

func TestFromArgsRejectsMissingRemoteIP(t *testing.T) {
	a := validArgs()
	a.RemoteIP = ""
	_, err := FromArgs(a)
	assert.Error(t, err)
}

func TestFromArgsRejectsBadLayout(t *testing.T) {
	a := validArgs()
	a.Layout = "diagonal"
	_, err := FromArgs(a)
	assert.Error(t, err)
}

func TestFromArgsRejectsNonPositiveRemoteGeometry(t *testing.T) {
	a := validArgs()
	a.RemoteWidth = 0
	_, err := FromArgs(a)
	assert.Error(t, err)
}

func TestFromArgsDefaultsNameToHostname(t *testing.T) {
	a := validArgs()
	a.Name = ""
	settings, err := FromArgs(a)
	require.NoError(t, err)
	assert.NotEmpty(t, settings.Name)
}
