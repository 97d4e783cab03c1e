// Package discovery implements the LAN presence protocol: a UDP
// announcer broadcasting at 1Hz and a listener maintaining a table of
// peers seen in the last 30 seconds.
package discovery

import (
	"encoding/json"
	"fmt"

	"github.com/ljchg12-hue/km-share/internal/kmerr"
)

// DefaultPort is the fixed UDP port discovery runs on.
const DefaultPort = 12346

// Magic identifies a datagram as a km-share presence beacon.
const Magic = "KM_SHARE_DISCOVERY"

// Beacon is the single JSON datagram a peer announces.
type Beacon struct {
	Magic        string `json:"magic"`
	Name         string `json:"name"`
	OS           string `json:"os"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
}

// EncodeBeacon serializes a beacon to its datagram payload.
func EncodeBeacon(b Beacon) ([]byte, error) {
	b.Magic = Magic
	return json.Marshal(b)
}

// ParseBeacon decodes a datagram and validates the magic string. A
// datagram that isn't valid JSON, or is JSON but carries the wrong
// magic, is rejected — the caller silently ignores it (beacons from
// other protocols or stray traffic on the port aren't errors).
func ParseBeacon(data []byte) (Beacon, error) {
	var b Beacon
	if err := json.Unmarshal(data, &b); err != nil {
		return Beacon{}, kmerr.NewDiscoveryError("parse beacon", err)
	}
	if b.Magic != Magic {
		return Beacon{}, kmerr.NewDiscoveryError("parse beacon", fmt.Errorf("not a km-share beacon"))
	}
	return b, nil
}
