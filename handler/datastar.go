package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is set by the datastar client on backend actions.
	DataStarRequestHeader = "Datastar-Request"

	// DataStarAcceptHeader marks clients that accept an event stream.
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam carries signals on GET actions.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter   // morph the target (default)
	PatchInner   = datastar.ElementPatchModeInner   // replace inner HTML
	PatchReplace = datastar.ElementPatchModeReplace // replace the target
	PatchRemove  = datastar.ElementPatchModeRemove  // remove the target
	PatchAppend  = datastar.ElementPatchModeAppend  // append inside the target
	PatchPrepend = datastar.ElementPatchModePrepend // prepend inside the target
)

// IsDataStar reports whether r is a datastar backend action.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// NewSSE starts a datastar event stream. Headers are flushed immediately.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}
