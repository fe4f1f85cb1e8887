package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cmdBoot = &cobra.Command{
	Use:   "boot [hostname]",
	Short: "Send immediate reboot request",
	Long:  ``,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBoot,
}

func init() {
	rootCmd.AddCommand(cmdBoot)
}

func runBoot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.connect(ctx, cmd); err != nil {
		return err
	}

	fmt.Println("Sending reboot command...")
	return s.prog.Boot(ctx)
}
