package main

import (
	"fmt"
	"os"

	"github.com/AirborneEngineering/blethrs/bootloader"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if bootloader.IsTransportError(err) {
			fmt.Fprintln(os.Stderr, "Check the hostname is correct and the device is in bootloader mode.")
		}
		os.Exit(1)
	}
}
