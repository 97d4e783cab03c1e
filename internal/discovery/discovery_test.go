package discovery

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBeaconRejectsWrongMagic(t *testing.T) {
	data, err := EncodeBeacon(Beacon{Name: "host-a"})
	require.NoError(t, err)

	var tampered Beacon
	require.NoError(t, json.Unmarshal(data, &tampered))
	tampered.Magic = "SOMETHING_ELSE"

	tamperedData, err := json.Marshal(tampered)
	require.NoError(t, err)

	_, err = ParseBeacon(tamperedData)
	assert.Error(t, err)
}

func TestParseBeaconRejectsMalformedJSON(t *testing.T) {
	_, err := ParseBeacon([]byte("{not json"))
	assert.Error(t, err)
}

func TestEncodeDecodeBeaconRoundTrip(t *testing.T) {
	data, err := EncodeBeacon(Beacon{Name: "host-a", OS: "linux", ScreenWidth: 1920, ScreenHeight: 1080})
	require.NoError(t, err)

	got, err := ParseBeacon(data)
	require.NoError(t, err)
	assert.Equal(t, "host-a", got.Name)
	assert.Equal(t, Magic, got.Magic)
	assert.Equal(t, 1920, got.ScreenWidth)
}

// TestPeerTableUpsertFiresOnceForNewPeer covers the "callback fires
// exactly once per new peer" half of §4.3 at the table level.
func TestPeerTableUpsertFiresOnceForNewPeer(t *testing.T) {
	table := NewPeerTable()
	now := time.Unix(0, 0)

	isNew := table.Upsert("10.0.0.5", PeerInfo{Name: "host-b", LastSeen: now}, now)
	assert.True(t, isNew)

	isNew = table.Upsert("10.0.0.5", PeerInfo{Name: "host-b", LastSeen: now.Add(time.Second)}, now.Add(time.Second))
	assert.False(t, isNew, "re-announce from an already-known, non-expired peer must not be treated as new")
}

// TestDiscoveryExpiryScenario is scenario 6: a beacon injected at t=0 is
// present at t=29s and absent at t=31s.
func TestDiscoveryExpiryScenario(t *testing.T) {
	table := NewPeerTable()
	epoch := time.Unix(0, 0)

	table.Upsert("10.0.0.9", PeerInfo{Name: "host-c", LastSeen: epoch}, epoch)

	present := table.Snapshot(epoch.Add(29 * time.Second))
	_, ok := present["10.0.0.9"]
	assert.True(t, ok, "peer must still be present just under the 30s TTL")

	absent := table.Snapshot(epoch.Add(31 * time.Second))
	_, ok = absent["10.0.0.9"]
	assert.False(t, ok, "peer must be pruned once its beacon is older than the 30s TTL")
}

// TestIsSelfIPFiltersLocalAddresses is P9: a beacon whose source address
// matches one of the host's own interfaces is dropped before ever
// reaching the peer table.
func TestIsSelfIPFiltersLocalAddresses(t *testing.T) {
	ips := []net.IP{net.ParseIP("192.168.1.10")}

	assert.True(t, isSelfIP("192.168.1.10", ips))
	assert.True(t, isSelfIP("127.0.0.1", ips))
	assert.False(t, isSelfIP("192.168.1.99", ips))
}
