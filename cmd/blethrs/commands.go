package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/loopholelabs/logging"
	"github.com/loopholelabs/logging/types"
	"github.com/spf13/cobra"

	"github.com/AirborneEngineering/blethrs/bootloader"
	"github.com/AirborneEngineering/blethrs/protocol"
)

var rootCmd = &cobra.Command{
	Use:           "blethrs",
	Short:         "blethrs Ethernet bootloader client.",
	Long:          ``,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	flagPort        int
	flagBootReq     bool
	flagBootReqPort int
	flagNoReboot    bool
	flagChunkSize   int
	flagDebug       bool
	flagProfile     string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagPort, "port", "p", protocol.DefaultPort, "bootloader TCP port")
	pf.BoolVarP(&flagBootReq, "boot-req", "b", false, "send an initial boot request to the user firmware")
	pf.IntVar(&flagBootReqPort, "boot-req-port", protocol.DefaultBootRequestPort, "UDP port for the boot request")
	pf.BoolVarP(&flagNoReboot, "no-reboot", "n", false, "don't send a reboot request after completion")
	pf.IntVarP(&flagChunkSize, "chunk-size", "s", protocol.DefaultChunkSize, "flash write chunk size in bytes")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "debug logging (trace)")
	pf.StringVarP(&flagProfile, "config", "c", "", "device profile file (default ~/.blethrs/config.yaml)")
}

func Execute() error {
	return rootCmd.Execute()
}

// session bundles everything a subcommand needs to talk to one device.
type session struct {
	host    string
	chunk   int
	prog    *bootloader.Programmer
	log     types.RootLogger
	profile *Profile
}

// newSession resolves the device profile and flags into a connected
// Programmer. Flags that were set explicitly override the profile, which
// overrides the built-in defaults.
func newSession(cmd *cobra.Command, args []string, opts ...bootloader.Option) (*session, error) {
	profile, err := LoadProfile(flagProfile)
	if err != nil {
		return nil, err
	}

	host := profile.Hostname
	if len(args) > 0 {
		host = args[0]
	}
	if host == "" {
		return nil, fmt.Errorf("no hostname given and none set in the device profile")
	}

	port := flagPort
	if !cmd.Flags().Changed("port") && profile.Port != 0 {
		port = profile.Port
	}
	chunk := flagChunkSize
	if !cmd.Flags().Changed("chunk-size") && profile.ChunkSize != 0 {
		chunk = profile.ChunkSize
	}
	if err := validateChunkSize(chunk); err != nil {
		return nil, err
	}

	var log types.RootLogger
	if flagDebug {
		log = logging.New(logging.Zerolog, "blethrs", os.Stderr)
		log.SetLevel(types.TraceLevel)
	}

	transport := bootloader.NewTCPTransport(net.JoinHostPort(host, strconv.Itoa(port)))
	opts = append(opts,
		bootloader.WithChunkSize(chunk),
		bootloader.WithLogger(log),
	)

	return &session{
		host:    host,
		chunk:   chunk,
		prog:    bootloader.New(transport, opts...),
		log:     log,
		profile: profile,
	}, nil
}

// bootRequestPort returns the UDP kick port after profile resolution.
func (s *session) bootRequestPort(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("boot-req-port") && s.profile.BootRequestPort != 0 {
		return s.profile.BootRequestPort
	}
	return flagBootReqPort
}

// connect optionally kicks the running firmware into the bootloader, waits
// for the bootloader's listener, and prints its build banner. Every
// subcommand starts here, matching the protocol's expected request train.
func (s *session) connect(ctx context.Context, cmd *cobra.Command) error {
	if flagBootReq {
		port := s.bootRequestPort(cmd)
		fmt.Printf("Sending UDP boot request to port %d...\n", port)
		addr := net.JoinHostPort(s.host, strconv.Itoa(port))
		if err := bootloader.SendBootRequest(addr); err != nil {
			return err
		}
		fmt.Println("Sent, waiting for reboot...")
		if err := s.prog.Handshake(ctx); err != nil {
			return err
		}
	}

	fmt.Println("Connecting to bootloader...")
	info, err := s.prog.Info(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Received bootloader information:")
	fmt.Println(info)
	return nil
}

// finish sends the final reboot-into-firmware command unless suppressed.
func (s *session) finish(ctx context.Context) error {
	if flagNoReboot {
		return nil
	}
	fmt.Println("Sending reboot command...")
	return s.prog.Boot(ctx)
}

// validateChunkSize rejects sizes the flash write path cannot use: writes
// are word-aligned, and a chunk readback plus the status word must fit
// under the response ceiling.
func validateChunkSize(n int) error {
	if n < 4 || n%4 != 0 {
		return fmt.Errorf("chunk size must be a positive multiple of 4, got %d", n)
	}
	if n+protocol.StatusLen > protocol.MaxResponseSize {
		return fmt.Errorf("chunk size %d exceeds the maximum of %d bytes",
			n, protocol.MaxResponseSize-protocol.StatusLen)
	}
	return nil
}

// parseAddr accepts decimal or 0x-prefixed flash addresses.
func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid flash address %q: %w", s, err)
	}
	return uint32(v), nil
}
