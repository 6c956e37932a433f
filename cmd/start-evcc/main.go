// Command start-evcc runs the EVCC (vehicle) side of the stack for one
// charging session: it discovers a SECC via SDP, dials the advertised
// endpoint, and drives a pkg/evcc.Machine to completion (spec §6 "CLI
// surface").
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-iso15118/hlc/internal/config"
	"github.com/go-iso15118/hlc/internal/diagnostics"
	"github.com/go-iso15118/hlc/pkg/controller"
	"github.com/go-iso15118/hlc/pkg/evcc"
	"github.com/go-iso15118/hlc/pkg/message"
	"github.com/go-iso15118/hlc/pkg/pki"
	"github.com/go-iso15118/hlc/pkg/session"
	"github.com/go-iso15118/hlc/pkg/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := &cobra.Command{
		Use:           "start-evcc",
		Short:         "Run the EVCC vehicle-side HLC stack for one session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	exitCode := int(diagnostics.ExitOK)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		code, err := runEVCC(cmd.Context())
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
		fmt.Fprintln(os.Stderr, "start-evcc:", err)
	}
	return exitCode
}

func runEVCC(ctx context.Context) (diagnostics.ExitCode, error) {
	cfg, err := config.Load()
	if err != nil {
		return diagnostics.ExitConfigError, err
	}

	log, err := diagnostics.New(diagnostics.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return diagnostics.ExitConfigError, err
	}
	log = log.WithComponent("start-evcc")

	iface, err := resolveInterface(cfg.NetworkInterface)
	if err != nil {
		return diagnostics.ExitConfigError, err
	}

	security := transport.SecurityNoTLS
	if cfg.EVCCUseTLS {
		security = transport.SecurityTLS
	}

	resp, err := transport.Discover(ctx, iface, transport.Request{
		Security:  security,
		Transport: transport.TransportTCP,
	}, transport.DefaultRetryPolicy())
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-evcc: sdp discovery: %w", err)
	}
	if resp.Refused {
		return diagnostics.ExitConfigError, fmt.Errorf("start-evcc: SECC refused requested security policy")
	}
	if cfg.EVCCEnforceTLS && resp.Security != transport.SecurityTLS {
		return diagnostics.ExitConfigError, fmt.Errorf("start-evcc: EVCC_ENFORCE_TLS set but SECC endpoint is not TLS")
	}

	var store *pki.Store
	if cfg.PKIPath != "" {
		store, err = pki.LoadDir(cfg.PKIPath)
		if err != nil {
			return diagnostics.ExitStartupFailure, fmt.Errorf("start-evcc: load PKI: %w", err)
		}
	}

	var conn net.Conn
	if resp.Security == transport.SecurityTLS {
		var clientCert *tls.Certificate
		if store != nil {
			clientCert = store.ContractIdentity
		}
		tlsCfg := pki.EVCCClientConfig(pki.Dialect20Profile(), clientCert, nil, "")
		tlsCfg.InsecureSkipVerify = true // no server-name/root material resolved from SDP alone; the SECC's certificate is not verified, in the handshake or afterwards
		conn, err = transport.DialTLS(ctx, resp.Endpoint, tlsCfg)
	} else {
		conn, err = transport.DialTCP(ctx, resp.Endpoint)
	}
	if err != nil {
		return diagnostics.ExitStartupFailure, fmt.Errorf("start-evcc: dial %s: %w", resp.Endpoint, err)
	}
	defer conn.Close()

	ctrl := newEVCCController(cfg)
	sess := session.New(session.ID{}, session.RoleEVCC, message.DialectUnknown, time.Now())

	m := &evcc.Machine{Sess: sess, Ctrl: ctrl, Conn: conn}
	if err := m.Run(ctx); err != nil {
		log.LogFailure(diagnostics.NewFailureRecord(
			fmt.Sprintf("%x", sess.ID), sess.State.String(), sess.TerminationReason.String(), err.Error(),
		))
		return diagnostics.ExitInternalError, err
	}

	log.Info("session complete", map[string]interface{}{
		"session_id": fmt.Sprintf("%x", sess.ID),
		"result":     sess.TerminationReason.String(),
	})
	return diagnostics.ExitOK, nil
}

func newEVCCController(cfg config.Config) controller.EVCCController {
	// As with the SECC side, EVCC_CONTROLLER_SIM is the only value spec
	// §6 recognizes and the simulator the only implementation shipped.
	_ = cfg.EVCCControllerSim
	return controller.NewEVCCSimulator("EVCC-SIM-001", message.ModeACSinglePhase, message.AuthEIM, cfg.EVCCUseTLS)
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
