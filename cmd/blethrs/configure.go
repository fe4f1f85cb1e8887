package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AirborneEngineering/blethrs/netconf"
)

var cmdConfigure = &cobra.Command{
	Use:   "configure [hostname] mac ip gateway prefix",
	Short: "Load new network configuration",
	Long: `Writes the device's network identity record (MAC, IP, gateway,
prefix length) to the configuration sector, protected by CRC.`,
	Args: cobra.RangeArgs(4, 5),
	RunE: runConfigure,
}

var configureLMA string

func init() {
	rootCmd.AddCommand(cmdConfigure)
	cmdConfigure.Flags().StringVar(&configureLMA, "lma", "0x0800C000",
		"flash address to write to")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	addr, err := parseAddr(configureLMA)
	if err != nil {
		return err
	}

	fields := args[len(args)-4:]
	prefix, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("invalid prefix length %q: %w", fields[3], err)
	}
	rec, err := netconf.ParseRecordFields(fields[0], fields[1], fields[2], prefix)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, args[:len(args)-4])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.connect(ctx, cmd); err != nil {
		return err
	}

	fmt.Printf("Writing new configuration: %s\n", rec)
	if err := s.prog.WriteConfig(ctx, addr, rec); err != nil {
		return err
	}
	fmt.Println("Readback successful.")

	return s.finish(ctx)
}
