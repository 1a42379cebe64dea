package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/condohub/condoctl/pkg/errors"
)

// Form collects and validates input for create/update of one resource.
// D is the page-level draft shape carrying `validate` tags. The create and
// update funcs adapt the draft to the resource's wire DTOs.
type Form[D any] struct {
	mu        sync.Mutex
	validate  *validator.Validate
	create    func(ctx context.Context, draft D) error
	update    func(ctx context.Context, id int, draft D) error
	onSuccess func()

	open      bool
	editingID *int
	draft     D
	errMsg    string
	inflight  bool
}

func NewForm[D any](
	create func(ctx context.Context, draft D) error,
	update func(ctx context.Context, id int, draft D) error,
	onSuccess func(),
) *Form[D] {
	return &Form[D]{
		validate:  validator.New(),
		create:    create,
		update:    update,
		onSuccess: onSuccess,
	}
}

// OpenCreate opens the form with empty defaults.
func (f *Form[D]) OpenCreate() {
	var zero D
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.editingID = nil
	f.draft = zero
	f.errMsg = ""
}

// OpenEdit opens the form pre-filled from an existing record's values.
func (f *Form[D]) OpenEdit(id int, draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.editingID = &id
	f.draft = draft
	f.errMsg = ""
}

// Close discards the pending mutation.
func (f *Form[D]) Close() {
	var zero D
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.editingID = nil
	f.draft = zero
	f.errMsg = ""
}

func (f *Form[D]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Editing reports whether the form targets an existing record.
func (f *Form[D]) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID != nil
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[D]) SetDraft(draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
}

// ErrorMessage is the inline validation or submit error, "" when none.
func (f *Form[D]) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Submit validates locally, then persists. On failure the form stays open
// with the message inline so the user can correct and resubmit. A submit
// while another is in flight is rejected.
func (f *Form[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return errors.NewLocalValidation("no form is open")
	}
	if f.inflight {
		f.mu.Unlock()
		return errors.NewLocalValidation("a submission is already in flight")
	}
	draft := f.draft
	editingID := f.editingID

	if err := f.validate.Struct(draft); err != nil {
		msg := validationMessage(err)
		f.errMsg = msg
		f.mu.Unlock()
		return errors.NewLocalValidation(msg)
	}
	f.inflight = true
	f.mu.Unlock()

	var err error
	if editingID != nil {
		err = f.update(ctx, *editingID, draft)
	} else {
		err = f.create(ctx, draft)
	}

	f.mu.Lock()
	f.inflight = false
	if err != nil {
		f.errMsg = errors.Message(err)
		f.mu.Unlock()
		return err
	}
	var zero D
	f.open = false
	f.editingID = nil
	f.draft = zero
	f.errMsg = ""
	onSuccess := f.onSuccess
	f.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// validationMessage flattens the first field error into the same shape
// server validation messages arrive in.
func validationMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
