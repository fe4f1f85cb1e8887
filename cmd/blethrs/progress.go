package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/AirborneEngineering/blethrs/bootloader"
)

// progressRenderer maps Programmer progress callbacks onto terminal bars,
// one bar per transfer phase.
type progressRenderer struct {
	container *mpb.Progress
	bar       *mpb.Bar
	phase     string
}

func newProgressRenderer() *progressRenderer {
	return &progressRenderer{
		container: mpb.New(
			mpb.WithOutput(color.Output),
			mpb.WithAutoRefresh(),
		),
	}
}

// callback implements bootloader.ProgressCallback.
func (r *progressRenderer) callback(p bootloader.Progress) {
	switch p.Phase {
	case bootloader.PhaseHandshake:
		fmt.Println("Waiting for bootloader...")
	case bootloader.PhaseErasing:
		fmt.Println("Erasing (may take a few seconds)...")
	case bootloader.PhaseWriting, bootloader.PhaseReading:
		if r.phase != p.Phase {
			r.finishBar()
			r.phase = p.Phase
			r.bar = r.container.AddBar(100,
				mpb.PrependDecorators(
					decor.Name(p.Phase, decor.WCSyncSpaceR),
				),
				mpb.AppendDecorators(
					decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
				),
			)
		}
		r.bar.SetCurrent(int64(p.Percentage))
	case bootloader.PhaseComplete:
		r.finishBar()
	}
}

func (r *progressRenderer) finishBar() {
	if r.bar != nil {
		r.bar.SetCurrent(100)
		r.bar = nil
	}
}

// wait completes any open bar and flushes the container.
func (r *progressRenderer) wait() {
	r.finishBar()
	r.container.Wait()
}
