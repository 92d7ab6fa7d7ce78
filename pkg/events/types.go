package events

import "encoding/json"

// Event name constants
const (
	PhaseChanged = "phase.changed"
	SessionEnded = "session.ended"
)

// Event is a named message with a JSON payload.
type Event struct {
	Name string          // event name
	Data json.RawMessage // Raw JSON payload
}

// PhaseChangedEvent is the typed payload for phase.changed.
type PhaseChangedEvent struct {
	Technique       string `json:"technique"`
	Cycle           int    `json:"cycle"`
	Phase           string `json:"phase"`
	Kind            string `json:"kind"`
	DurationSeconds int    `json:"durationSeconds"`
	Ts              int64  `json:"ts"`
}

// SessionEndedEvent is the typed payload for session.ended.
type SessionEndedEvent struct {
	Technique string `json:"technique"`
	Cycles    int    `json:"cycles"`
	Cancelled bool   `json:"cancelled"`
	Ts        int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.PhaseChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Phase, payload.Cycle)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
