// Package session holds the state of the single interactive resume session:
// the form draft, the in-flight generation snapshot and the latest outcome.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

// State is the tag of a GenerationOutcome
type State int

const (
	Idle State = iota
	Loading
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the immutable copy of the form taken when a generation starts.
type Snapshot struct {
	ID          uuid.UUID            `json:"id"`
	Input       types.RawResumeInput `json:"input"`
	SubmittedAt time.Time            `json:"submitted_at"`
}

// Outcome is the result of the most recent submission.
// Resume and Snapshot are set only in Success, Message and Err only in Failure.
type Outcome struct {
	State        State                   `json:"state"`
	GenerationID uuid.UUID               `json:"generation_id"`
	Resume       *types.StructuredResume `json:"resume,omitempty"`
	Message      string                  `json:"message,omitempty"`
	Err          error                   `json:"-"`
	Snapshot     *Snapshot               `json:"-"`
}

// Done reports whether the outcome is terminal for its generation.
func (o Outcome) Done() bool {
	return o.State == Success || o.State == Failure
}
