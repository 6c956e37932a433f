// Command start-secc runs the SECC (charge-point) side of the stack: it
// answers SDP discovery, accepts TCP/TLS connections, and drives one
// pkg/secc.Machine per accepted session (spec §6 "CLI surface").
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/netip"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-iso15118/hlc/internal/config"
	"github.com/go-iso15118/hlc/internal/diagnostics"
	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/pki"
	"github.com/go-iso15118/hlc/pkg/secc"
	"github.com/go-iso15118/hlc/pkg/session"
	"github.com/go-iso15118/hlc/pkg/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := &cobra.Command{
		Use:           "start-secc",
		Short:         "Run the SECC charge-point-side HLC stack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	exitCode := int(diagnostics.ExitOK)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		code, err := runSECC(cmd.Context())
		exitCode = int(code)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		if exitCode == int(diagnostics.ExitOK) {
			exitCode = int(diagnostics.ExitInternalError)
		}
		fmt.Fprintln(os.Stderr, "start-secc:", err)
	}
	return exitCode
}

func runSECC(ctx context.Context) (diagnostics.ExitCode, error) {
	cfg, err := config.Load()
	if err != nil {
		return diagnostics.ExitConfigError, err
	}

	log, err := diagnostics.New(diagnostics.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return diagnostics.ExitConfigError, err
	}
	log = log.WithComponent("start-secc")

	iface, err := resolveInterface(cfg.NetworkInterface)
	if err != nil {
		return diagnostics.ExitConfigError, err
	}

	var tlsCfg *tls.Config
	if cfg.PKIPath != "" {
		store, err := pki.LoadDir(cfg.PKIPath)
		if err != nil {
			return diagnostics.ExitStartupFailure, fmt.Errorf("start-secc: load PKI: %w", err)
		}
		if store.EVSEIdentity != nil {
			tlsCfg = pki.SECCServerConfig(pki.Dialect20Profile(), *store.EVSEIdentity, false)
		}
	}

	var ln net.Listener
	if tlsCfg != nil {
		ln, err = transport.ListenTLS(tlsCfg)
	} else {
		ln, err = transport.ListenTCP()
	}
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-secc: listen: %w", err)
	}
	defer ln.Close()

	linkAddr, err := linkLocalAddr(iface)
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-secc: resolve link-local address: %w", err)
	}
	endpoint, err := transport.Endpoint(ln, linkAddr)
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-secc: resolve endpoint: %w", err)
	}

	sdp, err := transport.Listen(iface, cfg.SECCEnforceTLS, endpoint)
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-secc: sdp listen: %w", err)
	}
	defer sdp.Close()

	store := session.NewStore(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sdp.Serve(ctx); err != nil && ctx.Err() == nil {
			log.Error("sdp server stopped", err, nil)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		ln.Close()
	}()

	log.Info("secc listening", map[string]interface{}{"endpoint": endpoint.String(), "tls": tlsCfg != nil})

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Error("accept failed", err, nil)
			continue
		}
		// A fresh controller per connection keeps one SECC session from
		// mutating another's state (spec §8 invariant 6): the simulator
		// carries per-session mutable fields (stop-request flag), so
		// sharing one instance across concurrent sessions would violate
		// that invariant.
		ctrl := newSECCController(cfg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveConn(ctx, conn, store, ctrl, log)
		}()
	}

	wg.Wait()
	return diagnostics.ExitOK, nil
}

func serveConn(ctx context.Context, conn net.Conn, store *session.Store, ctrl controller.SECCController, log *diagnostics.Logger) {
	defer conn.Close()

	sess := session.New(session.ID{}, session.RoleSECC, message.DialectUnknown, time.Now())
	_ = store.Put(sess)
	defer store.Delete(sess.ID)

	m := &secc.Machine{Sess: sess, Ctrl: ctrl, Conn: conn}
	if err := m.Run(ctx); err != nil {
		log.LogFailure(diagnostics.NewFailureRecord(
			fmt.Sprintf("%x", sess.ID), sess.State.String(), sess.TerminationReason.String(), err.Error(),
		))
	}
}

func newSECCController(cfg config.Config) controller.SECCController {
	// Real physical controllers are out of scope (spec §1 Non-goals); the
	// simulator is the only implementation this module ships, selected
	// unconditionally here since SECC_CONTROLLER_SIM is the only value
	// spec §6 recognizes for this key.
	_ = cfg.SECCControllerSim
	return controller.NewSECCSimulator(
		"EVSE-SIM-001",
		[]message.EnergyTransferMode{message.ModeACSinglePhase, message.ModeACThreePhase, message.ModeDCExtended},
		[]message.AuthorizationMethod{message.AuthEIM, message.AuthPnC},
		22000,
	)
}

func resolveInterface(name string) (*net.Interface, error) {
	if name == "" {
		return nil, nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("config: NETWORK_INTERFACE %q: %w", name, err)
	}
	return iface, nil
}

// linkLocalAddr picks the link-local IPv6 address iface advertises via
// SDP's endpoint field, falling back to the loopback address when no
// interface was configured (useful for exercising the CLI without real
// network hardware).
func linkLocalAddr(iface *net.Interface) (netip.Addr, error) {
	if iface == nil {
		return netip.MustParseAddr("::1"), nil
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return netip.Addr{}, err
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.To4() != nil {
			continue
		}
		if ipnet.IP.IsLinkLocalUnicast() {
			addr, ok := netip.AddrFromSlice(ipnet.IP)
			if ok {
				return addr, nil
			}
		}
	}
	return netip.Addr{}, fmt.Errorf("transport: no link-local IPv6 address on %s", iface.Name)
}
