package discovery

import (
	"sync"
	"time"
)

// PeerTTL is how long a peer survives without a fresh beacon.
const PeerTTL = 30 * time.Second

// PeerInfo is what discovery knows about one peer, keyed by source IP.
type PeerInfo struct {
	Name         string
	OS           string
	ScreenWidth  int
	ScreenHeight int
	LastSeen     time.Time
}

// PeerTable tracks discovered peers with expiry, independent of any
// session — discovery outlives sessions per §5's resource scoping.
type PeerTable struct {
	mu    sync.Mutex
	peers map[string]PeerInfo
}

func NewPeerTable() *PeerTable {
	return &PeerTable{peers: make(map[string]PeerInfo)}
}

// Upsert records a beacon from ip, returning true if ip was not
// previously known (or had expired) — this is the moment a callback
// fires exactly once per §4.3.
func (t *PeerTable) Upsert(ip string, info PeerInfo, now time.Time) (isNew bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.peers[ip]
	isNew = !ok || now.Sub(existing.LastSeen) > PeerTTL
	t.peers[ip] = info
	return isNew
}

// Snapshot prunes entries older than PeerTTL and returns what remains —
// the "get_peers" operation from §4.3, expiry-on-access.
func (t *PeerTable) Snapshot(now time.Time) map[string]PeerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	for ip, info := range t.peers {
		if now.Sub(info.LastSeen) > PeerTTL {
			delete(t.peers, ip)
		}
	}

	out := make(map[string]PeerInfo, len(t.peers))
	for ip, info := range t.peers {
		out[ip] = info
	}
	return out
}
