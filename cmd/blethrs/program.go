package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AirborneEngineering/blethrs/bootloader"
	"github.com/AirborneEngineering/blethrs/protocol"
)

var cmdProgram = &cobra.Command{
	Use:   "program [hostname] binfile",
	Short: "Bootload new firmware image",
	Long:  ``,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runProgram,
}

var programLMA string

func init() {
	rootCmd.AddCommand(cmdProgram)
	cmdProgram.Flags().StringVar(&programLMA, "lma", "0x08010000",
		"flash address to load to")
}

func runProgram(cmd *cobra.Command, args []string) error {
	addr, err := parseAddr(programLMA)
	if err != nil {
		return err
	}

	binfile := args[len(args)-1]
	data, err := os.ReadFile(binfile)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s is empty", binfile)
	}
	if !protocol.ValidFlashRange(addr, uint32(len(data))) {
		return fmt.Errorf("image of %d bytes at 0x%08X does not fit in device flash",
			len(data), addr)
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

	segments := bootloader.PlanSegments(addr, data, s.chunk)
	fmt.Printf("Writing %.2fkB in %d segments...\n", float64(len(data))/1024, len(segments))

	if err := s.prog.WriteAndVerify(ctx, addr, data); err != nil {
		return err
	}
	render.wait()
	fmt.Println("Readback successful.")

	return s.finish(ctx)
}
