// Package contactform implements the validation core of a contact form.
//
// The form has four fields: firstName (required, at least five characters),
// lastName (required), email (required, valid address) and an optional message.
// Validation is split into pure functions and a stateful Form:
//
//   - ValidateField applies the rule set of one field and returns its first failure.
//   - ValidateAll validates a whole FormState and returns a ValidationResult.
//   - Form.OnFieldChange updates one value and recomputes only that field's error,
//     so errors appear and disappear while the visitor types.
//   - Form.OnSubmit validates everything; on success it produces a SubmissionRecord
//     and clears the errors, otherwise it exposes every error and produces nothing.
//
// Renderers never reach into the Form. They read a View snapshot, either by
// calling Form.View after a mutation or by subscribing an Observer:
//
//	form := contactform.New()
//	form.Subscribe(func(v contactform.View) {
//		render(v.State, v.Errors, v.Submission)
//	})
//	_ = form.OnFieldChange(contactform.FirstName, "123")
//	// v.Errors.Message(contactform.FirstName) == "firstName must be at least 5 characters"
//
// Validation failures are values, never errors or panics. The only error the
// package returns is ErrUnknownField for input names outside the form.
package contactform
