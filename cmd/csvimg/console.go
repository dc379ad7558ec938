package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/handiism/csv-image-downloader/internal/download"
)

// console renders observer events as a row progress bar with failure
// lines printed above it.
type console struct {
	out    io.Writer
	bar    *progressbar.ProgressBar
	label  string
	failed int
}

func newConsole(out io.Writer, label string) *console {
	return &console{out: out, label: label}
}

// Drain consumes events until the channel is closed.
func (c *console) Drain(events <-chan download.Event) {
	for ev := range events {
		switch ev.Type {
		case download.EventProgress:
			c.progress(ev.Processed, ev.Total)
		case download.EventFailure:
			c.failure(ev.Failure.Message)
		}
	}
	c.finish()
}

func (c *console) progress(processed, total int) {
	// A new run restarts counting at one.
	if c.bar == nil || processed == 1 {
		c.finish()
		c.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(c.out),
			progressbar.OptionSetDescription(c.label),
			progressbar.OptionSetItsString("row"),
			progressbar.OptionShowIts(),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = c.bar.Set(processed)
}

func (c *console) failure(msg string) {
	c.failed++
	if c.bar != nil {
		_ = c.bar.Clear()
	}
	fmt.Fprintf(c.out, "✗ %s\n", msg)
	if c.bar != nil {
		_ = c.bar.RenderBlank()
	}
}

func (c *console) finish() {
	if c.bar == nil {
		return
	}
	_ = c.bar.Finish()
	fmt.Fprintln(c.out)
	c.bar = nil
}
