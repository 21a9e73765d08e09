package contact

import (
	"log/slog"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/logger"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

// StateResponse is the JSON form of a View.
type StateResponse struct {
	FormID      string                        `json:"formId"`
	State       contactform.FormState         `json:"state"`
	Errors      map[string]string             `json:"errors"`
	Submission  *contactform.SubmissionRecord `json:"submission,omitempty"`
	Submittable bool                          `json:"submittable"`
}

// ValidateResponse is returned by /api/validate for valid input.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

type listRequest struct {
	Limit int `query:"limit"`
}

func (m *Module) state(ctx handler.Context, _ struct{}) handler.Response {
	formID := FormIDFromContext(ctx)
	view, err := m.svc.Load(ctx, formID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(StateResponse{
		FormID:      formID,
		State:       view.State,
		Errors:      view.Errors.Messages(),
		Submission:  view.Submission,
		Submittable: view.Submittable(),
	})
}

func (m *Module) validate(_ handler.Context, state contactform.FormState) handler.Response {
	if err := m.svc.Validate(state).Err(); err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(ValidateResponse{Valid: true})
}

func (m *Module) submissions(ctx handler.Context, req listRequest) handler.Response {
	list, err := m.svc.Recent(ctx, req.Limit)
	if err != nil {
		return handler.Error(err)
	}
	if list == nil {
		list = []contactsvc.Submission{}
	}
	return handler.JSON(list, handler.WithJSONMeta(map[string]any{"count": len(list)}))
}

// apiError answers every API failure with a JSON error envelope.
func (m *Module) apiError(ctx handler.Context, err error) {
	r := ctx.Request()
	resp := handler.JSONError(err)
	m.log.WarnContext(ctx, "api request failed",
		logger.Error(err),
		slog.String("path", r.URL.Path),
	)
	if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
		m.log.ErrorContext(ctx, "failed to render json error", logger.Error(renderErr))
	}
}
