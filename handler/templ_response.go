package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent is satisfied by templ.Component.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the component is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the target.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component of a TemplMulti response.
type TemplPatch struct {
	Component TemplComponent
	Options   []TemplOption
}

// Patch builds a TemplPatch.
func Patch(component TemplComponent, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	component TemplComponent
	options   []TemplOption
	status    int
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.component, t.options...)
	}
	writeHTMLHeader(w, t.status)
	return t.component.Render(r.Context(), w)
}

// Templ renders component. Datastar requests receive it as an element patch,
// other requests as an HTML document.
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts}
}

// TemplWithStatus is Templ with a status code for plain HTML responses.
// Event streams always answer 200.
func TemplWithStatus(status int, component TemplComponent, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts, status: status}
}

type templPartialResponse struct {
	partial TemplComponent
	full    TemplComponent
	options []TemplOption
}

func (t templPartialResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	writeHTMLHeader(w, 0)
	return t.full.Render(r.Context(), w)
}

// TemplPartial patches partial for datastar requests and renders full otherwise.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templPartialResponse{partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
	full    TemplComponent
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	writeHTMLHeader(w, 0)
	if t.full != nil {
		return t.full.Render(r.Context(), w)
	}
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends each patch as its own event for datastar requests and
// concatenates the components for other requests.
//
//	return handler.TemplMulti(
//		handler.Patch(views.FieldError(contactform.FirstName, msg)),
//		handler.Patch(views.Submission(view.Submission)),
//	)
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}

// TemplMultiPartial sends patches to datastar requests and renders full
// for other requests.
func TemplMultiPartial(full TemplComponent, patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches, full: full}
}

func writeHTMLHeader(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
}
