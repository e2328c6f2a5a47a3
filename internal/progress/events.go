// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "time"

// Event is a lifecycle update for one work unit.
type Event struct {
	Unit      int       // Index of the unit in the batch
	Input     string    // Input path
	Output    string    // Output path
	Type      EventType // What happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	Err       error     // Set for EventFailed
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventQueued indicates the unit is known but has not started.
	EventQueued EventType = iota
	// EventStarted indicates the unit has begun reading its input.
	EventStarted
	// EventCompleted indicates the output was written.
	EventCompleted
	// EventFailed indicates the unit failed at some stage.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventQueued:
		return "queued"
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends an event. Implementations must not block.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives progress events.
type Listener interface {
	// OnEvent is called once per delivered event.
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

var _ Reporter = NullReporter{}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (NullReporter) Close() {}
