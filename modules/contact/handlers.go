package contact

import (
	"errors"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/logger"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

// changeRequest carries the edited field from the path and the current
// values from datastar signals or the form body.
type changeRequest struct {
	Field     string `path:"field" json:"-" form:"-"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Message   string `json:"message" form:"message"`
}

func (r changeRequest) state() contactform.FormState {
	return contactform.FormState{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Message:   r.Message,
	}
}

func (m *Module) page(ctx handler.Context, _ struct{}) handler.Response {
	view, err := m.svc.Load(ctx, FormIDFromContext(ctx))
	if err != nil {
		return handler.Error(err)
	}

	var notice string
	if err := m.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), noticeFlashKey, &notice); err != nil {
		notice = ""
	}

	return handler.Templ(m.views.Page(PageParams{View: view, Notice: notice, BasePath: m.basePath}))
}

func (m *Module) change(ctx handler.Context, req changeRequest) handler.Response {
	field, err := contactform.ParseField(req.Field)
	if err != nil {
		return handler.Error(errors.Join(handler.ErrNotFound, err))
	}

	view, err := m.svc.Change(ctx, FormIDFromContext(ctx), field, req.state().Value(field))
	if err != nil {
		return handler.Error(err)
	}

	return handler.TemplPartial(
		m.fieldError(view, field),
		m.views.Page(PageParams{View: view, BasePath: m.basePath}),
		handler.WithTarget("#"+FieldErrorID(field)),
	)
}

func (m *Module) submit(ctx handler.Context, state contactform.FormState) handler.Response {
	view, err := m.svc.Submit(ctx, FormIDFromContext(ctx), state)
	if errors.Is(err, contactsvc.ErrArchiveFailed) {
		return handler.Error(errors.Join(handler.ErrServiceUnavailable, err))
	}
	if err != nil {
		return handler.Error(err)
	}

	if !handler.IsDataStar(ctx.Request()) {
		// Post/redirect/get: the stored view carries errors and the record.
		if view.Errors.Valid() {
			if err := m.cookies.SetFlash(ctx.ResponseWriter(), noticeFlashKey, NoticeSubmitted); err != nil {
				m.log.WarnContext(ctx, "failed to set flash notice", logger.Error(err))
			}
		}
		return handler.Redirect(m.basePath)
	}

	patches := make([]handler.TemplPatch, 0, len(contactform.Fields())+1)
	for _, f := range contactform.Fields() {
		patches = append(patches, handler.Patch(m.fieldError(view, f), handler.WithTarget("#"+FieldErrorID(f))))
	}
	patches = append(patches, handler.Patch(
		m.views.Submission(SubmissionParams{Record: view.Submission}),
		handler.WithTarget("#"+SubmissionID),
	))
	return handler.TemplMulti(patches...)
}

func (m *Module) reset(ctx handler.Context, _ struct{}) handler.Response {
	if err := m.svc.Reset(ctx, FormIDFromContext(ctx)); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(m.basePath)
}

func (m *Module) fieldError(view contactform.View, f contactform.Field) handler.TemplComponent {
	params := FieldErrorParams{Field: f}
	if err, ok := view.Errors[f]; ok {
		params.Error = &err
	}
	return m.views.FieldError(params)
}
