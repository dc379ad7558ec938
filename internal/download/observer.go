package download

import "github.com/handiism/csv-image-downloader/internal/model"

// Observer receives progress and failure events from a run.
//
// Events are delivered on the goroutine executing Run. Implementations that
// drive a UI must hand them over to their own event loop.
type Observer interface {
	// Progress is called after every row with the number of rows processed
	// so far and the total row count.
	Progress(processed, total int)

	// Failure is called once per failure event.
	Failure(f model.Failure)
}

// ObserverFuncs adapts plain functions to the Observer interface.
// Nil fields are ignored.
type ObserverFuncs struct {
	OnProgress func(processed, total int)
	OnFailure  func(f model.Failure)
}

// Progress implements Observer.
func (o ObserverFuncs) Progress(processed, total int) {
	if o.OnProgress != nil {
		o.OnProgress(processed, total)
	}
}

// Failure implements Observer.
func (o ObserverFuncs) Failure(f model.Failure) {
	if o.OnFailure != nil {
		o.OnFailure(f)
	}
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Progress(int, int)      {}
func (NopObserver) Failure(model.Failure) {}

// EventType tells which field of an Event is set.
type EventType int

const (
	EventProgress EventType = iota
	EventFailure
)

// Event is a single observer notification carried over a channel.
type Event struct {
	Type      EventType
	Processed int
	Total     int
	Failure   model.Failure
}

// ChannelObserver forwards events to a channel.
//
// Sends block until the receiver is ready, so the consumer must keep
// draining Events until the run has returned and Close has been called.
//
// Example:
//
//	obs := download.NewChannelObserver(16)
//	go func() {
//	    defer obs.Close()
//	    manager.Run(ctx, params)
//	}()
//	for ev := range obs.Events() {
//	    ...
//	}
type ChannelObserver struct {
	events chan Event
}

// NewChannelObserver creates a ChannelObserver with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{events: make(chan Event, buffer)}
}

// Events returns the receive side of the event channel.
func (o *ChannelObserver) Events() <-chan Event {
	return o.events
}

// Close closes the event channel. It must be called once, after the run
// that reports to this observer has returned.
func (o *ChannelObserver) Close() {
	close(o.events)
}

// Progress implements Observer.
func (o *ChannelObserver) Progress(processed, total int) {
	o.events <- Event{Type: EventProgress, Processed: processed, Total: total}
}

// Failure implements Observer.
func (o *ChannelObserver) Failure(f model.Failure) {
	o.events <- Event{Type: EventFailure, Failure: f}
}
