package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AirborneEngineering/blethrs/bootloader"
	"github.com/AirborneEngineering/blethrs/protocol"
)

var cmdRead = &cobra.Command{
	Use:   "read [hostname] outfile",
	Short: "Read a region of flash to a file",
	Long:  ``,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRead,
}

var (
	readLMA    string
	readLength uint32
)

func init() {
	rootCmd.AddCommand(cmdRead)
	cmdRead.Flags().StringVar(&readLMA, "lma", "0x08010000",
		"flash address to read from")
	cmdRead.Flags().Uint32Var(&readLength, "length", 4096,
		"number of bytes to read (multiple of 4)")
}

func runRead(cmd *cobra.Command, args []string) error {
	addr, err := parseAddr(readLMA)
	if err != nil {
		return err
	}
	if !protocol.ValidFlashRange(addr, readLength) {
		return fmt.Errorf("read of %d bytes at 0x%08X is outside device flash",
			readLength, addr)
	}

	render := newProgressRenderer()
	s, err := newSession(cmd, args[:len(args)-1],
		bootloader.WithProgressCallback(render.callback))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.connect(ctx, cmd); err != nil {
		return err
	}

	fmt.Printf("Reading %.2fkB from 0x%08X...\n", float64(readLength)/1024, addr)
	data, err := s.prog.ReadRange(ctx, addr, readLength)
	if err != nil {
		return err
	}
	render.wait()

	outfile := args[len(args)-1]
	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s.\n", len(data), outfile)
	return nil
}
