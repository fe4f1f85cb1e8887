// Package bootloader provides a high-level client for flashing devices
// running the blethrs Ethernet bootloader.
//
// # Overview
//
// The package drives the bootloader's one-command-per-connection TCP
// protocol:
//
//   - Kicking a running application into the bootloader over UDP
//   - Waiting for the bootloader's listener with a bounded retry handshake
//   - Erasing, writing and verifying firmware images in chunks
//   - Flashing the device's network configuration record
//   - Booting back into user firmware
//
// # Basic Usage
//
//	t := bootloader.NewTCPTransport("10.1.1.10:7777")
//	prog := bootloader.New(t)
//
//	// Optionally reboot the running application into the bootloader,
//	// then wait for it to come up.
//	bootloader.SendBootRequest("10.1.1.10:1735")
//	if err := prog.Handshake(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Flash a firmware image with readback verification.
//	if err := prog.WriteAndVerify(ctx, protocol.DefaultUserAddr, image); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Hand control back to the application.
//	prog.Boot(ctx)
//
// # Write Ordering
//
// WriteAndVerify writes segments in descending address order so the segment
// containing the image's entry vector is committed last. If the transfer is
// interrupted, the base of the image is only ever written once everything
// above it succeeded, so a partially flashed device never presents a
// valid-looking entry vector in front of an incomplete image.
//
// # Configuration Options
//
//	prog := bootloader.New(t,
//	    bootloader.WithChunkSize(1024),
//	    bootloader.WithTimeout(5*time.Second),
//	    bootloader.WithEraseTimeout(30*time.Second),
//	    bootloader.WithRetryPolicy(bootloader.RetryPolicy{Attempts: 20, Delay: time.Second, Timeout: time.Second}),
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithLogger(log),
//	)
//
// # Error Handling
//
// The package surfaces four kinds of failure:
//   - *TransportError: socket-level failures (refused, timeout, reset)
//   - *protocol.ProtocolError: non-zero status from the bootloader
//   - *VerifyMismatchError: readback disagreement, naming the exact byte
//   - plain errors for local misuse (bad lengths, empty data)
//
// None are retried automatically except transport failures inside the
// handshake's bounded loop.
//
// # Transport Independence
//
// The Programmer talks to a Transport interface; TCPTransport is the real
// implementation, and tests can substitute an in-memory fake.
package bootloader
