package client

import (
	"context"
	"net/http"
	"time"

	"meetcal/models"
)

// Modal is an open dialog the flow closes after a successful mutation.
type Modal interface {
	Close()
}

// accountRedirectDelay is how long the account-update success notification
// stays on screen before a returned redirect URL is followed.
const accountRedirectDelay = 3 * time.Second

// Flows bundles the per-form submission flows of the booking pages: session
// booking and editing plus the account and password forms.
type Flows struct {
	submitter  *Submitter
	reconciler *Reconciler
}

// NewFlows wires the form flows to the shared client and the reconciler
// whose calendar they refresh.
func NewFlows(api *Client, reconciler *Reconciler) *Flows {
	return &Flows{submitter: NewSubmitter(api), reconciler: reconciler}
}

// BookSession submits the session booking form. The mutation is gated behind
// confirm, an acceptance step that must be explicitly passed on every
// booking, and succeeds only on 201. On success the open modal closes and
// the bookings overlay is switched on so the fresh booking is fetched and
// displayed.
func (f *Flows) BookSession(ctx context.Context, form Form, confirm func() bool, modal Modal) (*models.APIResponse, error) {
	return f.submitter.Submit(ctx, form, SubmitOptions{
		SuccessStatus:  http.StatusCreated,
		SuccessMessage: "Session booked successfully!",
		Confirm:        confirm,
		OnSuccess: func(*models.APIResponse) {
			if modal != nil {
				modal.Close()
			}
			if f.reconciler != nil {
				_ = f.reconciler.SetBookingsVisible(ctx, true)
			}
		},
	})
}

// EditSession submits the session edit form; any 2xx is success. The modal
// closes and every visible overlay category is re-fetched and redrawn.
func (f *Flows) EditSession(ctx context.Context, form Form, modal Modal) (*models.APIResponse, error) {
	return f.submitter.Submit(ctx, form, SubmitOptions{
		SuccessMessage: "Session Info updated successfully!",
		OnSuccess: func(*models.APIResponse) {
			if modal != nil {
				modal.Close()
			}
			if f.reconciler != nil {
				_ = f.reconciler.Refresh(ctx)
			}
		},
	})
}

// UpdateAccount submits the account update form. A returned redirect URL is
// followed after a fixed delay so the success notification can be read; the
// control stays disabled to prevent an immediate resubmission.
func (f *Flows) UpdateAccount(ctx context.Context, form Form) (*models.APIResponse, error) {
	return f.submitter.Submit(ctx, form, SubmitOptions{
		SuccessMessage: "Account updated successfully!",
		LeaveDisabled:  true,
		RedirectDelay:  accountRedirectDelay,
	})
}

// ForgotPassword submits the password-reset request form. Success leaves the
// control disabled and follows any redirect URL immediately.
func (f *Flows) ForgotPassword(ctx context.Context, form Form) (*models.APIResponse, error) {
	return f.submitter.Submit(ctx, form, SubmitOptions{
		SuccessMessage: "Request successful!",
		LeaveDisabled:  true,
	})
}

// ResetPassword submits the new-password form. Success intentionally leaves
// the control disabled so the reset cannot be replayed.
func (f *Flows) ResetPassword(ctx context.Context, form Form) (*models.APIResponse, error) {
	return f.submitter.Submit(ctx, form, SubmitOptions{
		SuccessMessage: "Password reset successful!",
		LeaveDisabled:  true,
	})
}

// BasicForm is a plain Form implementation for embedding and tests: a field
// map plus recorded per-field errors.
type BasicForm struct {
	ActionURL     string
	Fields        map[string]string
	FieldErrors   map[string]string
	SubmitControl Control
}

// NewBasicForm builds a form posting to action with the given fields.
func NewBasicForm(action string, fields map[string]string) *BasicForm {
	return &BasicForm{
		ActionURL:   action,
		Fields:      fields,
		FieldErrors: make(map[string]string),
	}
}

func (f *BasicForm) Action() string            { return f.ActionURL }
func (f *BasicForm) Values() map[string]string { return f.Fields }
func (f *BasicForm) Control() Control          { return f.SubmitControl }

// SetFieldError records the message when the form has the named field.
func (f *BasicForm) SetFieldError(name, message string) bool {
	if _, present := f.Fields[name]; !present {
		return false
	}
	if f.FieldErrors == nil {
		f.FieldErrors = make(map[string]string)
	}
	f.FieldErrors[name] = message
	return true
}
