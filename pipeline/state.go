// SPDX-License-Identifier: EPL-2.0

package pipeline

import "fmt"

// State is a step of the conversion. A run only ever moves forward
// through the states in declaration order; Notched and SpectralGated may
// be passed over.
type State int

const (
	Idle State = iota
	Normalized
	ResampledInternal
	HighPassed
	Notched
	SpectralGated
	LowPassed
	ResampledOutput
	Encoded
	Quantized
	Decoded
	Smoothed
	Clipped
	Packed
	Done
)

var stateNames = [...]string{
	Idle:              "idle",
	Normalized:        "normalized",
	ResampledInternal: "resampled-internal",
	HighPassed:        "high-passed",
	Notched:           "notched",
	SpectralGated:     "spectral-gated",
	LowPassed:         "low-passed",
	ResampledOutput:   "resampled-output",
	Encoded:           "encoded",
	Quantized:         "quantized",
	Decoded:           "decoded",
	Smoothed:          "smoothed",
	Clipped:           "clipped",
	Packed:            "packed",
	Done:              "done",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// EventKind says what happened to a stage.
type EventKind int

const (
	StageStarted EventKind = iota
	StageCompleted
	StageSkipped
	StageFailed
)

func (k EventKind) String() string {
	switch k {
	case StageStarted:
		return "started"
	case StageCompleted:
		return "completed"
	case StageSkipped:
		return "skipped"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a progress notification. Detail names the sub-step for stages
// that have several, such as one notch candidate.
type Event struct {
	Stage  State
	Kind   EventKind
	Detail string
	Err    error
}

// Notifier receives progress events. Notify is called synchronously from
// the goroutine running the conversion.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// StageSkip records a tolerated failure. The signal from before the
// skipped step continued down the chain.
type StageSkip struct {
	Stage  State
	Detail string
	Err    error
}
