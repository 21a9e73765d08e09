package views

import (
	"context"
	"encoding/json"
	"path"

	"github.com/dmitrymomot/contactform/modules/contact"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

type label struct {
	key      string
	fallback string
}

var labels = map[contactform.Field]label{
	contactform.FirstName: {"contact.labels.first_name", "First Name"},
	contactform.LastName:  {"contact.labels.last_name", "Last Name"},
	contactform.Email:     {"contact.labels.email", "Email"},
	contactform.Message:   {"contact.labels.message", "Message"},
}

// displayIDs are the test ids of the submission display elements.
var displayIDs = map[contactform.Field]string{
	contactform.FirstName: "firstnameDisplay",
	contactform.LastName:  "lastnameDisplay",
	contactform.Email:     "emailDisplay",
	contactform.Message:   "messageDisplay",
}

type contactViews struct {
	localizer
}

// New returns the module views. tr may be nil.
func New(tr Translator) *contact.Views {
	v := contactViews{localizer{tr: tr}}
	return &contact.Views{
		Page:       v.page,
		FieldError: v.fieldError,
		Submission: v.submission,
	}
}

func (v contactViews) label(ctx context.Context, f contactform.Field) string {
	l := labels[f]
	return v.t(ctx, l.key, l.fallback)
}

// labelText marks required fields with an asterisk.
func (v contactViews) labelText(ctx context.Context, f contactform.Field) string {
	if f.Required() {
		return v.label(ctx, f) + "*"
	}
	return v.label(ctx, f)
}

func (v contactViews) errorText(ctx context.Context, err validator.ValidationError) string {
	msg := v.message(ctx, err)
	return v.t(ctx, "contact.error", "Error: "+msg, "message", msg)
}

func basePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func signalsJSON(state contactform.FormState) (string, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func postAction(url string) string {
	return "@post('" + url + "')"
}

func resetAction(base string) string {
	return postAction(path.Join(base, "reset"))
}

func fieldAction(base string, f contactform.Field) string {
	return postAction(path.Join(base, "fields", f.String()))
}

func inputType(f contactform.Field) string {
	if f == contactform.Email {
		return "email"
	}
	return "text"
}

func fieldErrorParams(f contactform.Field, view contactform.View) contact.FieldErrorParams {
	params := contact.FieldErrorParams{Field: f}
	if err, ok := view.Errors[f]; ok {
		params.Error = &err
	}
	return params
}

// displayedFields omits the message when the record has none.
func displayedFields(rec contactform.SubmissionRecord) []contactform.Field {
	fields := make([]contactform.Field, 0, 4)
	for _, f := range contactform.Fields() {
		if f == contactform.Message && !rec.HasMessage() {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func recordValue(rec contactform.SubmissionRecord, f contactform.Field) string {
	values := contactform.FormState{
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Message:   rec.Message,
	}
	return values.Value(f)
}
