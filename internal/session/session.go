package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrInProgress is returned when a submission arrives while a generation is loading.
	ErrInProgress = errors.New("a resume generation is already in progress")
	// ErrNoResume is returned by ExportSource when there is no successful outcome.
	ErrNoResume = errors.New("no generated resume to export")

	errNoResult = errors.New("generation returned no resume")
)

// Generator produces a StructuredResume from the form fields.
type Generator interface {
	Generate(ctx context.Context, input types.RawResumeInput) (*types.StructuredResume, error)
}

// Gate is consulted once a submission has the session to itself. A non-nil
// error rejects the submission and leaves the previous outcome in place.
type Gate func() error

// Session owns the form draft and the GenerationOutcome of one interactive user.
type Session struct {
	mu       sync.Mutex
	inflight *semaphore.Weighted
	draft    types.RawResumeInput
	pending  *Snapshot
	outcome  Outcome
	now      func() time.Time
}

// New returns an Idle session whose draft holds the sample form values.
func New() *Session {
	return &Session{
		inflight: semaphore.NewWeighted(1),
		draft:    types.SampleInput(),
		outcome:  Outcome{State: Idle},
		now:      time.Now,
	}
}

// Draft returns the current form values.
func (s *Session) Draft() types.RawResumeInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the form values without submitting them.
func (s *Session) SetDraft(input types.RawResumeInput) {
	s.mu.Lock()
	s.draft = input
	s.mu.Unlock()
}

// Outcome returns a copy of the latest outcome.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Begin snapshots input and moves the session to Loading, discarding the previous outcome.
// It fails with ErrInProgress while another generation is loading, or with the
// error of the first gate that rejects it.
func (s *Session) Begin(input types.RawResumeInput, gates ...Gate) (Snapshot, error) {
	if !s.inflight.TryAcquire(1) {
		return Snapshot{}, ErrInProgress
	}
	for _, gate := range gates {
		if err := gate(); err != nil {
			s.inflight.Release(1)
			return Snapshot{}, err
		}
	}

	snap := Snapshot{
		ID:          uuid.New(),
		Input:       input,
		SubmittedAt: s.now(),
	}

	s.mu.Lock()
	s.draft = input
	s.pending = &snap
	s.outcome = Outcome{State: Loading, GenerationID: snap.ID}
	s.mu.Unlock()

	log.Printf("[session] generation %s started for %q", snap.ID, input.FullName)
	return snap, nil
}

// Finish records the result of generation id. A result whose id is not the
// one currently loading is discarded and Finish returns false.
func (s *Session) Finish(id uuid.UUID, resume *types.StructuredResume, err error) bool {
	_, ok := s.finish(id, resume, err)
	return ok
}

func (s *Session) finish(id uuid.UUID, resume *types.StructuredResume, err error) (Outcome, bool) {
	s.mu.Lock()
	if s.pending == nil || s.pending.ID != id {
		s.mu.Unlock()
		log.Printf("[session] discarding stale result for generation %s", id)
		return Outcome{}, false
	}

	snap := s.pending
	s.pending = nil
	switch {
	case err != nil:
		s.outcome = Outcome{State: Failure, GenerationID: id, Message: err.Error(), Err: err}
	case resume == nil:
		s.outcome = Outcome{State: Failure, GenerationID: id, Message: errNoResult.Error(), Err: errNoResult}
	default:
		s.outcome = Outcome{State: Success, GenerationID: id, Resume: resume, Snapshot: snap}
	}
	outcome := s.outcome
	s.mu.Unlock()

	s.inflight.Release(1)
	log.Printf("[session] generation %s finished: %s", id, outcome.State)
	return outcome, true
}

// Run submits input and blocks until gen resolves. The returned outcome is the
// one recorded for this submission.
func (s *Session) Run(ctx context.Context, gen Generator, input types.RawResumeInput, gates ...Gate) (Outcome, error) {
	snap, err := s.Begin(input, gates...)
	if err != nil {
		return Outcome{}, err
	}
	return s.resolve(ctx, gen, snap), nil
}

// Start submits input and resolves it in the background. The channel receives
// exactly one outcome and is then closed.
func (s *Session) Start(ctx context.Context, gen Generator, input types.RawResumeInput, gates ...Gate) (Snapshot, <-chan Outcome, error) {
	snap, err := s.Begin(input, gates...)
	if err != nil {
		return Snapshot{}, nil, err
	}

	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		done <- s.resolve(ctx, gen, snap)
	}()
	return snap, done, nil
}

func (s *Session) resolve(ctx context.Context, gen Generator, snap Snapshot) Outcome {
	resume, err := gen.Generate(ctx, snap.Input)
	if err != nil {
		log.Printf("[session] generation %s failed: %v", snap.ID, err)
	}
	outcome, _ := s.finish(snap.ID, resume, err)
	return outcome
}

// ExportSource returns the resume on display together with the contact fields
// of the snapshot that produced it.
func (s *Session) ExportSource() (*types.StructuredResume, types.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.State != Success || s.outcome.Resume == nil || s.outcome.Snapshot == nil {
		return nil, types.ContactInfo{}, ErrNoResume
	}
	return s.outcome.Resume, s.outcome.Snapshot.Input.Contact(), nil
}
