// Package config parses CLI arguments into a validated settings
// snapshot, the single source of truth handed to the orchestrator,
// discovery service, and input backend at startup.
package config

import (
	"fmt"
	"os"

	"github.com/kbinani/screenshot"

	"github.com/ljchg12-hue/km-share/internal/control"
	"github.com/ljchg12-hue/km-share/internal/discovery"
	"github.com/ljchg12-hue/km-share/internal/kmerr"
)

// Args is the raw command-line surface, parsed by alexflint/go-arg.
type Args struct {
	LocalWidth  int `arg:"--local-width" help:"local screen width in pixels (0: auto-detect)"`
	LocalHeight int `arg:"--local-height" help:"local screen height in pixels (0: auto-detect)"`

	RemoteIP     string `arg:"--remote-ip,required" help:"peer's IP address"`
	RemotePort   int    `arg:"--remote-port" default:"12345" help:"peer's session TCP port (recorded only: the session dials the peer on --port)"`
	RemoteWidth  int    `arg:"--remote-width,required" help:"peer's screen width in pixels"`
	RemoteHeight int    `arg:"--remote-height,required" help:"peer's screen height in pixels"`

	Layout string `arg:"--layout" default:"right" help:"where the remote screen sits relative to local: left, right, top, bottom"`

	EdgeDetection  bool `arg:"--edge-detection" default:"true" help:"trigger handover on screen-edge crossing"`
	HideCursor     bool `arg:"--hide-cursor" help:"reserved: hide the local cursor while passive"`
	ShareClipboard bool `arg:"--share-clipboard" help:"reserved: share clipboard contents across hosts"`

	Port           int    `arg:"--port" default:"12345" help:"local session TCP port"`
	DiscoveryPort  int    `arg:"--discovery-port" default:"12346" help:"LAN discovery UDP port"`
	Name           string `arg:"--name" help:"name announced in discovery beacons (default: hostname)"`
}

// RemoteSettings is the peer's screen geometry and where to dial it.
type RemoteSettings struct {
	IP     string
	Port   int
	Width  int
	Height int
}

// Features are the optional, independently toggleable behaviors.
type Features struct {
	EdgeDetection  bool
	HideCursor     bool
	ShareClipboard bool
}

// NetworkSettings is the local session listener configuration.
type NetworkSettings struct {
	Port int
}

// Settings is the validated, typed configuration snapshot built from
// Args. It never changes after FromArgs returns except via SetLayout
// forwarded straight to the FSM (see internal/control).
type Settings struct {
	Local         control.Geometry
	Remote        RemoteSettings
	Layout        control.Layout
	Features      Features
	Network       NetworkSettings
	DiscoveryPort int
	Name          string
}

// FromArgs validates a parsed Args and produces a Settings snapshot.
// Geometry left as zero is resolved via LocalGeometryDefault before
// validation fails it.
func FromArgs(a Args) (Settings, error) {
	localW, localH := a.LocalWidth, a.LocalHeight
	if localW <= 0 || localH <= 0 {
		detectedW, detectedH, err := LocalGeometryDefault()
		if err != nil {
			return Settings{}, kmerr.NewConfigError("local geometry", err)
		}
		if localW <= 0 {
			localW = detectedW
		}
		if localH <= 0 {
			localH = detectedH
		}
	}
	if localW <= 0 || localH <= 0 {
		return Settings{}, kmerr.NewConfigError("local geometry", fmt.Errorf("could not determine local screen size"))
	}

	if a.RemoteWidth <= 0 || a.RemoteHeight <= 0 {
		return Settings{}, kmerr.NewConfigError("remote geometry", fmt.Errorf("remote width/height must be positive"))
	}
	if a.RemoteIP == "" {
		return Settings{}, kmerr.NewConfigError("remote address", fmt.Errorf("remote IP is required"))
	}

	position, err := control.ParsePosition(a.Layout)
	if err != nil {
		return Settings{}, kmerr.NewConfigError("layout", err)
	}

	name := a.Name
	if name == "" {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "km-share-host"
		}
		name = hostname
	}

	port := a.Port
	if port == 0 {
		port = 12345
	}
	remotePort := a.RemotePort
	if remotePort == 0 {
		remotePort = 12345
	}
	discoveryPort := a.DiscoveryPort
	if discoveryPort == 0 {
		discoveryPort = discovery.DefaultPort
	}

	return Settings{
		Local: control.Geometry{Width: localW, Height: localH},
		Remote: RemoteSettings{
			IP:     a.RemoteIP,
			Port:   remotePort,
			Width:  a.RemoteWidth,
			Height: a.RemoteHeight,
		},
		Layout: control.Layout{Position: position},
		Features: Features{
			EdgeDetection:  a.EdgeDetection,
			HideCursor:     a.HideCursor,
			ShareClipboard: a.ShareClipboard,
		},
		Network:       NetworkSettings{Port: port},
		DiscoveryPort: discoveryPort,
		Name:          name,
	}, nil
}

// LocalGeometryDefault sums the bounding box of every active display
// into a single virtual screen size, the same convention the teacher's
// own multi-display walk uses (core/utils.go's GetScreenSizes), standing
// in for the source tool's screeninfo-based get_screen_info().
func LocalGeometryDefault() (width, height int, err error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return 0, 0, fmt.Errorf("no active displays detected")
	}
	maxX, maxY := 0, 0
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		if right := bounds.Min.X + bounds.Dx(); right > maxX {
			maxX = right
		}
		if bottom := bounds.Min.Y + bounds.Dy(); bottom > maxY {
			maxY = bottom
		}
	}
	return maxX, maxY, nil
}
