package bootloader

import (
	"time"

	"github.com/loopholelabs/logging/types"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// Config holds the programmer configuration.
type Config struct {
	// Timeout bounds each request/response exchange
	Timeout time.Duration

	// EraseTimeout bounds Erase exchanges, which take far longer than any
	// other command
	EraseTimeout time.Duration

	// ChunkSize is the flash write segment size in bytes
	ChunkSize int

	// Retry is the boot handshake policy
	Retry RetryPolicy

	// ProgressCallback is called during chunked transfers (optional)
	ProgressCallback ProgressCallback

	// Logger is used for structured logging (optional)
	Logger types.Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Timeout:      protocol.DefaultTimeout,
		EraseTimeout: protocol.EraseTimeout,
		ChunkSize:    protocol.DefaultChunkSize,
		Retry:        DefaultRetryPolicy(),
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithTimeout sets the per-exchange timeout for all commands except Erase.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithEraseTimeout sets the timeout for Erase exchanges.
func WithEraseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.EraseTimeout = timeout
		}
	}
}

// WithChunkSize sets the flash write segment size. The size must be a
// positive multiple of 4 (writes are word-aligned) and small enough that a
// readback of one chunk fits under the response ceiling; invalid sizes are
// ignored.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size >= 4 && size%4 == 0 && size+protocol.StatusLen <= protocol.MaxResponseSize {
			c.ChunkSize = size
		}
	}
}

// WithRetryPolicy sets the boot handshake retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Config) {
		if policy.Attempts > 0 {
			c.Retry = policy
		}
	}
}

// WithProgressCallback sets a callback to observe chunked transfer progress.
//
// Example:
//
//	prog := bootloader.New(transport,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for programmer operations.
func WithLogger(log types.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}
