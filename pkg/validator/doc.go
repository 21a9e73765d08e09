// Package validator builds field validation out of small Rule values.
//
// A Rule pairs a Check func with the ValidationError reported when the check
// fails. The error carries a human-readable Message and a TranslationKey with
// TranslationValues so views can localise it:
//
//	err := validator.Apply(
//	    validator.RequiredString("lastName", lastName),
//	    validator.ValidEmail("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, f := range verrs.Fields() { ... }
//	}
//
// Apply collects every failure into ValidationErrors, which implements error
// and matches ErrValidationFailed with errors.Is. FirstFailure stops at the
// first failing rule, for fields that show one message at a time.
//
// Length rules count characters, not bytes.
package validator
