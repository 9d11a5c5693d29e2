// Package viewmodel holds the per-screen state of the client and mediates
// between the screens and the domain services.
//
// Every view model keeps the last state confirmed by the server apart from
// the draft being edited. A fetch replaces the confirmed state wholesale and
// a failed call leaves it untouched.
package viewmodel

import (
	"context"
	"errors"

	"rama-crm/apiclient"
	"rama-crm/logging"
	"rama-crm/notify"
)

// UI bundles the notification and loader collaborators handed to every
// view model.
type UI struct {
	Notifier notify.Notifier
	Loader   notify.Loader
}

// busy shows the indicator and returns the matching hide call.
func (u UI) busy() func() {
	u.Loader.ShowBusy()
	return u.Loader.HideBusy
}

// FieldErrors maps a form field to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) First(field string) string {
	if msgs := f[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (f FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(f))
	for k, v := range f {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// asValidationError wraps locally found field errors in the same shape a 422
// response produces.
func asValidationError(f FieldErrors) error {
	return &apiclient.ValidationError{Fields: f.clone()}
}

// classify normalises any error into the three shapes the screens know.
func classify(err error) error {
	var verr *apiclient.ValidationError
	var aerr *apiclient.AuthError
	var gerr *apiclient.GenericError
	if errors.As(err, &verr) || errors.As(err, &aerr) || errors.As(err, &gerr) {
		return err
	}
	return &apiclient.GenericError{Message: apiclient.ResError(err.Error())}
}

// settle surfaces a failed submission. Validation errors go to onFields,
// which replaces the form's errors wholesale; auth and generic failures become
// an error notification and leave the form alone.
func (u UI) settle(err error, onFields func(FieldErrors)) error {
	err = classify(err)

	var verr *apiclient.ValidationError
	var aerr *apiclient.AuthError
	switch {
	case errors.As(err, &verr):
		onFields(FieldErrors(verr.Fields).clone())
	case errors.As(err, &aerr):
		notify.Error(u.Notifier, apiclient.ResError(aerr.Message))
	default:
		notify.Error(u.Notifier, apiclient.ResError(err.Error()))
	}
	return err
}

// serverMessage returns the server supplied message of err, or fallback
// when there is none.
func serverMessage(err error, fallback string) string {
	var gerr *apiclient.GenericError
	if errors.As(err, &gerr) && gerr.Message != "" && gerr.Message != apiclient.FallbackMessage {
		return gerr.Message
	}
	return fallback
}

// refresh runs the post-save callback of a form. The save itself already
// succeeded, so a failed refresh is only logged; the callback reports to the
// user on its own.
func refresh(ctx context.Context, onSaved func(ctx context.Context) error) {
	if onSaved == nil {
		return
	}
	if err := onSaved(ctx); err != nil {
		logging.Logger.Warnf("Event ID: REFRESH_AFTER_SAVE_FAILED, Description: %v", err)
	}
}
