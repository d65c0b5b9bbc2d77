package report

import (
	"errors"
	"sync"
	"time"

	"afiliado/api"
	"afiliado/client"
)

// State of the submission workflow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ErrBusy means a submission of this draft is already in flight. The second
// submit is a no-op.
var ErrBusy = errors.New("a submission is already in progress")

// Submitter sends a packaged draft. client.Client satisfies it.
type Submitter interface {
	CreateReport(sub client.ReportSubmission) (*api.CreateReportResponse, error)
}

// Workflow drives one report draft from composition to submission. Automatic
// and manual location entry run through the same workflow with a different
// LocationSource, so they cannot submit the shared draft concurrently: the
// busy flag is held across the whole submission.
type Workflow struct {
	mu          sync.Mutex
	submitter   Submitter
	userID      int64
	draft       Draft
	departments []DepartmentOption
	state       State
	submitting  bool

	now func() time.Time
}

func NewWorkflow(submitter Submitter, userID int64) *Workflow {
	return &Workflow{
		submitter: submitter,
		userID:    userID,
		now:       time.Now,
	}
}

// SetDepartments installs the picker options the server enumerated for this
// screen activation.
func (w *Workflow) SetDepartments(options []DepartmentOption) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.departments = options
}

func (w *Workflow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Title = title
}

func (w *Workflow) SetDescription(description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Description = description
}

func (w *Workflow) SetDepartment(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.DepartmentID = id
}

// AcquireLocation runs a location source and stores the result in the draft.
// On any failure, including a denied permission, the draft keeps its previous
// location.
func (w *Workflow) AcquireLocation(source LocationSource) error {
	loc, err := source.Acquire()
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Location = &loc
	return nil
}

// AttachPhoto runs a picker and stores the chosen asset, discarding any photo
// attached before. Denial or cancellation leaves the draft unchanged.
func (w *Workflow) AttachPhoto(picker PhotoPicker) error {
	path, err := picker.Pick()
	if err != nil {
		return err
	}
	if path == "" { // cancelled
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.PhotoPath = path
	return nil
}

// Draft returns a snapshot of the draft for display.
func (w *Workflow) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit validates the draft and posts it. Validation failures never reach
// the network. On success the draft is cleared; on failure it is preserved
// unchanged for correction. Submitting while a submission is in flight
// returns ErrBusy without side effects.
func (w *Workflow) Submit() (string, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return "", ErrBusy
	}

	w.state = StateValidating
	if err := w.draft.validate(w.departments); err != nil {
		w.state = StateIdle
		w.mu.Unlock()
		return "", err
	}

	w.submitting = true
	w.state = StateSubmitting
	sub := client.ReportSubmission{
		UserID:       w.userID,
		Title:        w.draft.Title,
		Description:  w.draft.Description,
		DepartmentID: w.draft.DepartmentID,
		ReportDate:   w.now().UTC().Format("2006-01-02"),
		Latitude:     w.draft.Location.Latitude,
		Longitude:    w.draft.Location.Longitude,
		PhotoPath:    w.draft.PhotoPath,
	}
	w.mu.Unlock()

	result, err := w.submitter.CreateReport(sub)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.state = StateFailed
		return "", err
	}
	w.state = StateSuccess
	w.draft.Reset()
	return result.Message, nil
}
