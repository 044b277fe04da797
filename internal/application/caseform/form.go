// Package caseform implements the case create and edit form.
//
// The form seeds itself from an existing case, keeps local edits, validates
// the required fields and writes either a draft or a final submission.
// Dialogs, confirmation, navigation and the rich-text editor are supplied
// by the caller.
package caseform

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
	"github.com/nadiahindrianti/shesafe/internal/domain/shared"
)

// State is the form lifecycle
type State int

const (
	StateLoading State = iota
	StateEditing
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrDeclined is returned by Submit when the user declines the confirmation
var ErrDeclined = errors.New("caseform: submission declined")

// Editor is the rich-text widget holding the description
type Editor interface {
	// Seed initialises the widget; it is called at most once per form
	Seed(html string)
	// Content returns the current HTML
	Content() string
}

// Notifier shows dialogs
type Notifier interface {
	Warn(ctx context.Context, n Notice)
	// Success returns once the user has acknowledged the dialog
	Success(ctx context.Context, n Notice)
	Failure(ctx context.Context, n Notice)
}

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// Navigator moves to another screen
type Navigator interface {
	Navigate(path string)
}

// CaseWriter reads and writes cases; *store.CaseStore implements it
type CaseWriter interface {
	FetchOne(ctx context.Context, id string) (cases.Case, error)
	Create(ctx context.Context, p cases.CasePayload) (cases.Case, error)
	CreateDraft(ctx context.Context, p cases.CasePayload) (cases.Case, error)
	Update(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error)
}

// CategorySource lists categories; *store.CategoryStore implements it
type CategorySource interface {
	Fetch(ctx context.Context) (cases.CategoryIndex, error)
}

// Deps are the form's collaborators
type Deps struct {
	Cases      CaseWriter
	Categories CategorySource
	Editor     Editor
	Notifier   Notifier
	Confirmer  Confirmer
	Navigator  Navigator
	Logger     *zap.Logger
}

// required is what Validate checks
type required struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Form is a case create or edit form. It is not safe for concurrent use.
type Form struct {
	deps   Deps
	logger *zap.Logger
	caseID string

	state      State
	title      string
	message    string
	category   string
	status     cases.ApprovalStatus
	seeded     bool
	categories cases.CategoryIndex
}

// New creates a form. An empty caseID creates a new case.
func New(deps Deps, caseID string) (*Form, error) {
	switch {
	case deps.Cases == nil:
		return nil, errors.New("caseform: case writer is required")
	case deps.Editor == nil:
		return nil, errors.New("caseform: editor is required")
	case deps.Notifier == nil:
		return nil, errors.New("caseform: notifier is required")
	case deps.Confirmer == nil:
		return nil, errors.New("caseform: confirmer is required")
	case deps.Navigator == nil:
		return nil, errors.New("caseform: navigator is required")
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Form{
		deps:   deps,
		logger: log.With(zap.String("case_id", caseID)),
		caseID: caseID,
		state:  StateLoading,
	}, nil
}

// CaseID returns the edited case id, or "" in create mode
func (f *Form) CaseID() string { return f.caseID }

// IsEdit reports whether the form edits an existing case
func (f *Form) IsEdit() bool { return f.caseID != "" }

// State returns the lifecycle state
func (f *Form) State() State { return f.state }

// Field values as last loaded or edited
func (f *Form) Title() string                   { return f.title }
func (f *Form) Message() string                 { return f.message }
func (f *Form) Category() string                { return f.category }
func (f *Form) Status() cases.ApprovalStatus    { return f.status }
func (f *Form) Categories() cases.CategoryIndex { return f.categories }

// Load fetches categories and, in edit mode, the case being edited.
// Failures are logged and leave an editable form; the case fetch error is
// also returned.
func (f *Form) Load(ctx context.Context) error {
	f.state = StateLoading
	defer func() { f.state = StateEditing }()

	if f.deps.Categories != nil {
		idx, err := f.deps.Categories.Fetch(ctx)
		if err != nil {
			f.logger.Warn("Failed to fetch categories", zap.Error(err))
		} else {
			f.categories = idx
		}
	}

	if !f.IsEdit() {
		return nil
	}

	c, err := f.deps.Cases.FetchOne(ctx, f.caseID)
	if err != nil {
		f.logger.Error("Failed to fetch case", zap.Error(err))
		return fmt.Errorf("loading case %s: %w", f.caseID, err)
	}

	f.title = c.Title
	f.message = c.Message
	f.category = c.Category.ID
	f.status = c.IsApproved
	if !f.seeded {
		f.deps.Editor.Seed(c.Description)
		f.seeded = true
	}
	return nil
}

// SetTitle replaces the title
func (f *Form) SetTitle(title string) { f.title = title }

// SetMessage replaces the optional message
func (f *Form) SetMessage(message string) { f.message = message }

// SetCategory selects a category. Once categories are loaded the id must
// be one of them.
func (f *Form) SetCategory(id string) error {
	if id != "" && f.categories.Len() > 0 && !f.categories.Contains(id) {
		return fmt.Errorf("unknown category %q: %w", id, shared.ErrInvalidInput)
	}
	f.category = id
	return nil
}

// DraftAvailable reports whether the draft action is offered
func (f *Form) DraftAvailable() bool {
	return !f.IsEdit() || f.status.IsDraft()
}

// Payload returns the current merged payload with the loaded status
func (f *Form) Payload() cases.CasePayload {
	return cases.CasePayload{
		Title:       f.title,
		Description: f.deps.Editor.Content(),
		Category:    f.category,
		Message:     f.message,
		IsApproved:  f.status,
	}
}

// Validate checks the required fields. The description is required to
// have visible content, not just markup.
func (f *Form) Validate() error {
	desc := ""
	if HasContent(f.deps.Editor.Content()) {
		desc = "present"
	}

	err := validate.Struct(required{
		Title:       strings.TrimSpace(f.title),
		Description: desc,
		Category:    f.category,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return shared.NewValidationError(fields...)
}

// SaveDraft writes the form as a draft without asking for confirmation
func (f *Form) SaveDraft(ctx context.Context) error {
	if err := f.ready(ctx); err != nil {
		return err
	}

	p := f.Payload()
	p.IsApproved = cases.StatusDraft

	f.state = StateSubmitting
	var err error
	if f.IsEdit() {
		_, err = f.deps.Cases.Update(ctx, f.caseID, cases.DraftUpdate(p))
	} else {
		_, err = f.deps.Cases.CreateDraft(ctx, p)
	}
	return f.finish(ctx, err, p.IsApproved, draftSavedNotice)
}

// Submit asks for confirmation and writes the form for review
func (f *Form) Submit(ctx context.Context) error {
	if err := f.ready(ctx); err != nil {
		return err
	}

	ok, err := f.deps.Confirmer.Confirm(ctx, submitPrompt)
	if err != nil {
		return fmt.Errorf("confirming submission: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	p := f.Payload()
	p.IsApproved = cases.StatusSubmitted

	f.state = StateSubmitting
	if f.IsEdit() {
		_, err = f.deps.Cases.Update(ctx, f.caseID, cases.FinalUpdate(p))
	} else {
		_, err = f.deps.Cases.Create(ctx, p)
	}
	return f.finish(ctx, err, p.IsApproved, submittedNotice)
}

// ready checks the form can be written and validates it
func (f *Form) ready(ctx context.Context) error {
	if f.state != StateEditing {
		return fmt.Errorf("form is %s: %w", f.state, shared.ErrInvalidState)
	}
	if err := f.Validate(); err != nil {
		f.deps.Notifier.Warn(ctx, incompleteNotice)
		return err
	}
	return nil
}

func (f *Form) finish(ctx context.Context, err error, status cases.ApprovalStatus, success Notice) error {
	if err != nil {
		f.state = StateEditing
		f.logger.Warn("Failed to save case", zap.String("status", string(status)), zap.Error(err))
		f.deps.Notifier.Failure(ctx, failureNotice)
		if shared.IsUnauthorized(err) {
			f.deps.Navigator.Navigate(PathLogin)
		}
		return err
	}

	f.status = status
	f.deps.Notifier.Success(ctx, success)
	f.deps.Navigator.Navigate(PathMyCases)
	f.state = StateDone
	return nil
}
