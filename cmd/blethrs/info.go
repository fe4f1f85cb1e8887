package main

import "github.com/spf13/cobra"

var cmdInfo = &cobra.Command{
	Use:   "info [hostname]",
	Short: "Read bootloader information without rebooting",
	Long:  ``,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(cmdInfo)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	return s.connect(cmd.Context(), cmd)
}
