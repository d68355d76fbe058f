package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventMark     EventType = "mark"
	EventComplete EventType = "complete"
	EventMerge    EventType = "merge"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RecordingEvent describes a change in a recorder.
type RecordingEvent struct {
	EventBase
	Backend string `json:"backend"`
	Key     string `json:"key,omitempty"` // Set for EventMark
	Size    int    `json:"size"`
}

// MergeEvent describes one trace folded into a unified tree.
type MergeEvent struct {
	EventBase
	Depth   int `json:"depth"`   // Decisions in the merged trace
	Created int `json:"created"` // New nodes appended
	Reused  int `json:"reused"`  // Existing prefix nodes followed
}

// RecorderHooks are optional callbacks fired by recorders.
type RecorderHooks struct {
	OnMark     func(*RecordingEvent)
	OnComplete func(*RecordingEvent)
}

// MergeHooks are optional callbacks fired by the merge engine.
type MergeHooks struct {
	OnMerge func(*MergeEvent)
}
