package contactform

import (
	"time"
)

// View is an immutable snapshot of a Form exposed to renderers.
type View struct {
	State      FormState         `json:"state"`
	Errors     ValidationResult  `json:"errors,omitempty"`
	Submission *SubmissionRecord `json:"submission,omitempty"`
}

// Submittable reports whether the current state would pass a submit.
func (v View) Submittable() bool {
	return ValidateAll(v.State).Valid()
}

// Observer is notified with a fresh View after every mutation.
type Observer func(View)

// Option configures a Form.
type Option func(*Form)

// WithClock overrides the time source used to stamp submission records.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(f *Form) {
		if o != nil {
			f.Subscribe(o)
		}
	}
}

// Form owns a FormState together with its live errors and the last
// submission record. A Form is not safe for concurrent use; callers that
// share one across goroutines must serialise access.
type Form struct {
	state      FormState
	errors     ValidationResult
	submission *SubmissionRecord

	now       func() time.Time
	observers map[int]Observer
	nextID    int
}

// New creates an empty form.
func New(opts ...Option) *Form {
	f := &Form{
		errors:    make(ValidationResult),
		now:       time.Now,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Restore rebuilds a form from a previously captured View.
func Restore(v View, opts ...Option) *Form {
	f := New(opts...)
	f.state = v.State
	if v.Errors != nil {
		f.errors = v.Errors.clone()
	}
	if v.Submission != nil {
		rec := *v.Submission
		f.submission = &rec
	}
	return f
}

// View returns a snapshot of the current state, errors and submission.
func (f *Form) View() View {
	v := View{
		State:  f.state,
		Errors: f.errors.clone(),
	}
	if f.submission != nil {
		rec := *f.submission
		v.Submission = &rec
	}
	return v
}

// Subscribe registers o and returns a function that removes it.
func (f *Form) Subscribe(o Observer) (unsubscribe func()) {
	id := f.nextID
	f.nextID++
	f.observers[id] = o
	return func() { delete(f.observers, id) }
}

// OnFieldChange stores value and recomputes the error of that field only.
// Errors of other fields are left untouched.
func (f *Form) OnFieldChange(field Field, value string) error {
	if !f.state.Set(field, value) {
		return ErrUnknownField
	}

	if err, failed := ValidateField(field, value); failed {
		f.errors[field] = err
	} else {
		delete(f.errors, field)
	}

	f.notify()
	return nil
}

// OnSubmit replaces the form state with state and validates every field.
// When valid it produces a SubmissionRecord and clears the live errors;
// otherwise it records all errors, keeps the previous record and reports false.
func (f *Form) OnSubmit(state FormState) (SubmissionRecord, bool) {
	f.state = state

	result := ValidateAll(state)
	if !result.Valid() {
		f.errors = result
		f.notify()
		return SubmissionRecord{}, false
	}

	rec := newSubmissionRecord(state, f.now().UTC())
	f.submission = &rec
	f.errors = make(ValidationResult)
	f.notify()
	return rec, true
}

// Submit is OnSubmit over the form's current state.
func (f *Form) Submit() (SubmissionRecord, bool) {
	return f.OnSubmit(f.state)
}

func (f *Form) notify() {
	if len(f.observers) == 0 {
		return
	}
	v := f.View()
	for _, o := range f.observers {
		o(v)
	}
}
