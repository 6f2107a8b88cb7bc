package migrate

import "time"

// EventType tags pipeline lifecycle events.
type EventType string

const (
	EventJobStarted    EventType = "job_started"
	EventItemStage     EventType = "item_stage"
	EventItemSucceeded EventType = "item_succeeded"
	EventItemFailed    EventType = "item_failed"
	EventJobFinished   EventType = "job_finished"
)

// Event is one pipeline progress notification, consumed by the websocket
// hub and the job history journal.
type Event struct {
	Type     EventType        `json:"type"`
	JobID    string           `json:"jobId"`
	Item     string           `json:"item,omitempty"`
	Stage    Stage            `json:"stage,omitempty"`
	Error    string           `json:"error,omitempty"`
	Progress ProgressSnapshot `json:"progress"`
	Time     time.Time        `json:"time"`
}

// EventSink receives pipeline events. Publish must not block the pipeline;
// slow consumers drop rather than stall a running job.
type EventSink interface {
	Publish(event *Event)
}

// MultiSink fans one event out to several sinks.
type MultiSink []EventSink

func (m MultiSink) Publish(event *Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(event)
		}
	}
}
