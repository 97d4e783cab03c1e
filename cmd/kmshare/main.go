// Command kmshare runs one side of a two-host keyboard/mouse sharing
// session: it announces itself on the LAN, connects to the configured
// peer, and forwards local input while it holds control.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"

	"github.com/ljchg12-hue/km-share/internal/config"
	"github.com/ljchg12-hue/km-share/internal/control"
	"github.com/ljchg12-hue/km-share/internal/discovery"
	"github.com/ljchg12-hue/km-share/internal/inputio"
	"github.com/ljchg12-hue/km-share/internal/peer"
)

func main() {
	var args config.Args
	arg.MustParse(&args)

	logger := log.New(os.Stderr, "km-share: ", log.LstdFlags)

	settings, err := config.FromArgs(args)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	backend := inputio.NewBackend(settings.Local.Width, settings.Local.Height, logger)

	callbacks := peer.Callbacks{
		OnConnectionChanged: func(connected bool) {
			logger.Printf("session connected=%v", connected)
		},
		OnControlChanged: func(hasControl bool) {
			logger.Printf("control hasControl=%v", hasControl)
		},
	}

	orch := peer.New(peer.Config{
		Port:          settings.Network.Port,
		PeerAddr:      settings.Remote.IP,
		Local:         settings.Local,
		Remote:        control.Geometry{Width: settings.Remote.Width, Height: settings.Remote.Height},
		Layout:        settings.Layout,
		EdgeDetection: settings.Features.EdgeDetection,
	}, backend, callbacks, logger)

	disco := discovery.NewService(settings.DiscoveryPort, settings.Name, settings.Local.Width, settings.Local.Height, logger)
	disco.OnPeerFound(func(ip string, info discovery.PeerInfo) {
		logger.Printf("discovered peer %s (%s, %s, %dx%d)", ip, info.Name, info.OS, info.ScreenWidth, info.ScreenHeight)
	})
	if err := disco.Start(); err != nil {
		logger.Printf("discovery: %v", err)
	}
	defer disco.Stop()

	if err := orch.Start(); err != nil {
		logger.Fatalf("session: %v", err)
	}
	defer orch.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Println("shutting down")
}
