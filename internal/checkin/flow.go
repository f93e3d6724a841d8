// Package checkin drives one registrant's geofenced attendance verification:
// acquire a position, classify it against the workshop fence, and submit a
// passing reading for persistence. The flow is the client-side counterpart of
// the server's own re-validation in the attendance service.
package checkin

import (
	"context"
	"errors"
	"sync"

	"vokasia/internal/geo"
	"vokasia/internal/location"
	dErrors "vokasia/pkg/domain-errors"
)

// State enumerates the verification flow states.
type State string

const (
	StateIdle            State = "idle"
	StateLocating        State = "locating"
	StateVerified        State = "verified"
	StateOutOfRange      State = "out_of_range"
	StateLocationError   State = "location_error"
	StateSubmitting      State = "submitting"
	StateSubmitted       State = "submitted"
	StateSubmissionError State = "submission_error"
)

// Submission is what a passing verification sends to the recorder. The server
// recomputes the geofence check from the point; the flow's verdict is advice,
// not authority.
type Submission struct {
	WorkshopID string
	SessionID  string
	TalentaID  string
	Point      geo.Point
	Pass       string
}

// Recorder persists a submission. In production this is the attendance API
// client; tests inject fakes.
type Recorder interface {
	Record(ctx context.Context, sub Submission) error
}

// Snapshot is an immutable view of the flow for rendering.
type Snapshot struct {
	State       State
	DistanceM   float64
	Fix         location.Fix
	FailureKind location.FailureKind
	Message     string
}

// Flow is a single-flight verification session. One writer at a time: every
// mutation happens under mu, and a new Locate supersedes any in-flight one so
// a stale reading can never overwrite a fresher state.
type Flow struct {
	source   location.Source
	recorder Recorder
	fence    geo.Fence
	opts     location.Options

	workshopID string
	sessionID  string
	talentaID  string

	mu         sync.Mutex
	state      State
	distanceM  float64
	fix        location.Fix
	failKind   location.FailureKind
	message    string
	generation uint64
}

// New builds a flow for one registrant and one workshop session.
func New(source location.Source, recorder Recorder, fence geo.Fence, opts location.Options, workshopID, sessionID, talentaID string) (*Flow, error) {
	if source == nil {
		return nil, errors.New("location source is required")
	}
	if recorder == nil {
		return nil, errors.New("recorder is required")
	}
	if err := fence.Validate(); err != nil {
		return nil, err
	}
	return &Flow{
		source:     source,
		recorder:   recorder,
		fence:      fence,
		opts:       opts,
		workshopID: workshopID,
		sessionID:  sessionID,
		talentaID:  talentaID,
		state:      StateIdle,
	}, nil
}

// Snapshot returns the current state for rendering.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Flow) snapshotLocked() Snapshot {
	return Snapshot{
		State:       f.state,
		DistanceM:   f.distanceM,
		Fix:         f.fix,
		FailureKind: f.failKind,
		Message:     f.message,
	}
}

// Locate requests a fresh reading and classifies it against the fence. It is
// legal from every non-terminal state except Submitting; calling it while a
// prior Locate is in flight supersedes that request, and the superseded
// response is discarded when it eventually lands.
func (f *Flow) Locate(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return Snapshot{}, dErrors.New(dErrors.CodeConflict, "submission in progress")
	case StateSubmitted:
		f.mu.Unlock()
		return Snapshot{}, dErrors.New(dErrors.CodeConflict, "attendance already submitted")
	}
	f.generation++
	gen := f.generation
	f.state = StateLocating
	f.failKind = ""
	f.message = ""
	f.mu.Unlock()

	opts := f.opts
	reqCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	fix, err := f.source.Current(reqCtx, opts)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		// A newer Locate owns the state now; this response is stale.
		return f.snapshotLocked(), nil
	}

	if err != nil {
		f.applyFailureLocked(err)
		return f.snapshotLocked(), nil
	}
	if verr := fix.Point.Validate(); verr != nil {
		f.state = StateLocationError
		f.failKind = location.Unavailable
		f.message = verr.Error()
		return f.snapshotLocked(), nil
	}

	f.fix = fix
	f.distanceM, _ = f.fence.Check(fix.Point)
	if f.distanceM <= f.fence.RadiusM {
		f.state = StateVerified
	} else {
		f.state = StateOutOfRange
		f.message = "outside the workshop geofence"
	}
	return f.snapshotLocked(), nil
}

func (f *Flow) applyFailureLocked(err error) {
	f.state = StateLocationError
	var capErr *location.CapabilityError
	switch {
	case errors.As(err, &capErr):
		f.failKind = capErr.Kind
		f.message = capErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		f.failKind = location.Timeout
		f.message = "no position fix within the configured window"
	default:
		f.failKind = location.Unavailable
		f.message = err.Error()
	}
}

// Submit persists the verified reading. Only Verified (or a SubmissionError
// retry, which keeps the captured fix) may submit; the fence is re-checked
// right before the call in case state went stale.
func (f *Flow) Submit(ctx context.Context, pass string) (Snapshot, error) {
	f.mu.Lock()
	if f.state != StateVerified && f.state != StateSubmissionError {
		state := f.state
		f.mu.Unlock()
		return Snapshot{}, dErrors.New(dErrors.CodeConflict,
			"submission requires a verified in-range reading, current state: "+string(state))
	}

	distance, inside := f.fence.Check(f.fix.Point)
	if !inside {
		f.state = StateOutOfRange
		f.distanceM = distance
		f.message = "outside the workshop geofence"
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, dErrors.New(dErrors.CodeGeofenceViolation, "reading no longer inside the geofence").
			WithField("distance_m", distance)
	}

	f.state = StateSubmitting
	sub := Submission{
		WorkshopID: f.workshopID,
		SessionID:  f.sessionID,
		TalentaID:  f.talentaID,
		Point:      f.fix.Point,
		Pass:       pass,
	}
	f.mu.Unlock()

	err := f.recorder.Record(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateSubmissionError
		f.message = submissionMessage(err)
		return f.snapshotLocked(), nil
	}
	f.state = StateSubmitted
	f.message = ""
	return f.snapshotLocked(), nil
}

// submissionMessage surfaces the collaborator's message verbatim when it is a
// classified domain error, with a generic fallback for transport failures.
func submissionMessage(err error) string {
	var de *dErrors.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "submission failed, please retry"
}
