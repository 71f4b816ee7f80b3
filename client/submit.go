package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"meetcal/models"
)

// Control is a submit button or similar trigger that must be disabled for
// the duration of a request.
type Control interface {
	Disable()
	Enable()
}

// Form is the submitter's view of a page form: a flat field serialization
// plus the surfaces errors and state changes are routed back to.
type Form interface {
	// Action is the mutation endpoint the form posts to.
	Action() string
	// Values returns the flat field-name to value serialization.
	Values() map[string]string
	// SetFieldError attaches a validation message to the named field,
	// returning false when the form has no such field.
	SetFieldError(name, message string) bool
	// Control returns the triggering control; may be nil.
	Control() Control
}

// SubmitOptions tunes one submission flow.
type SubmitOptions struct {
	// SuccessStatus, when non-zero, is the only status treated as success
	// (session booking requires 201). Zero accepts any 2xx.
	SuccessStatus int
	// SuccessMessage overrides the server detail for the success
	// notification when the response carries none.
	SuccessMessage string
	// Confirm gates the mutation behind an explicit acceptance step that
	// must be passed on every submission; declining aborts with
	// ErrNotConfirmed before any request is made.
	Confirm func() bool
	// OnSuccess is a one-shot follow-up run after a successful response.
	OnSuccess func(*models.APIResponse)
	// LeaveDisabled keeps the control disabled after success (terminal
	// flows such as password reset, to prevent resubmission).
	LeaveDisabled bool
	// RedirectDelay postpones navigation to a returned redirect_url.
	RedirectDelay time.Duration
}

// Submitter serializes forms into mutation requests and reconciles the
// response: per-field validation errors, notifications, and success
// follow-ups.
type Submitter struct {
	api *Client
}

// NewSubmitter builds a submitter on the shared client.
func NewSubmitter(api *Client) *Submitter {
	return &Submitter{api: api}
}

// Submit runs one mutation: confirmation gate, control disable, a single
// POST of the form's values, then response reconciliation. The control is
// restored on every outcome except a success with LeaveDisabled set. Every
// failure is terminal for this attempt; resubmission needs a new gesture.
func (s *Submitter) Submit(ctx context.Context, form Form, opts SubmitOptions) (*models.APIResponse, error) {
	if opts.Confirm != nil && !opts.Confirm() {
		return nil, ErrNotConfirmed
	}

	control := form.Control()
	if control != nil {
		control.Disable()
	}
	restore := true
	defer func() {
		if restore && control != nil {
			control.Enable()
		}
	}()

	resp, err := s.api.postJSON(ctx, form.Action(), form.Values())
	if err != nil {
		s.api.notify(NotifyError, GenericErrorMessage)
		return nil, err
	}
	defer resp.Body.Close()

	success := statusOK(resp.StatusCode)
	if opts.SuccessStatus != 0 {
		success = resp.StatusCode == opts.SuccessStatus
	}

	if !success {
		return nil, s.handleFailure(resp.StatusCode, resp.Body, form)
	}

	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	message := envelope.Detail
	if message == "" {
		message = opts.SuccessMessage
	}
	if message != "" {
		s.api.notify(NotifySuccess, message)
	}

	if opts.LeaveDisabled {
		restore = false
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(&envelope)
	}
	if envelope.RedirectURL != "" && s.api.Nav != nil {
		s.redirect(envelope.RedirectURL, opts.RedirectDelay)
	}
	return &envelope, nil
}

// handleFailure decodes the error envelope and routes it. A present but
// non-object "errors" value is a programming defect on the server side and
// panics rather than being swallowed.
func (s *Submitter) handleFailure(status int, body io.Reader, form Form) error {
	var raw struct {
		Detail string          `json:"detail"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		serverErr := &ServerError{Status: status}
		s.api.notify(NotifyError, serverErr.Message())
		return serverErr
	}

	if len(raw.Errors) > 0 && string(raw.Errors) != "null" {
		var fieldErrors map[string]string
		if err := json.Unmarshal(raw.Errors, &fieldErrors); err != nil {
			panic(fmt.Sprintf("invalid response type for 'errors': %s", raw.Errors))
		}
		for name, message := range fieldErrors {
			if !form.SetFieldError(name, message) {
				s.api.notify(NotifyError, message)
			}
		}
		return ValidationErrors(fieldErrors)
	}

	serverErr := &ServerError{Status: status, Detail: raw.Detail}
	s.api.notify(NotifyError, serverErr.Message())
	return serverErr
}

// redirect navigates to url now or after delay.
func (s *Submitter) redirect(url string, delay time.Duration) {
	if delay <= 0 {
		s.api.Nav.NavigateTo(url)
		return
	}
	time.AfterFunc(delay, func() { s.api.Nav.NavigateTo(url) })
}
