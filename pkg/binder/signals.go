package binder

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// datastarRequestHeader is sent by the datastar client on every backend action.
const datastarRequestHeader = "Datastar-Request"

// Signals binds datastar signals using `json` struct tags. GET requests carry
// them in the "datastar" query parameter, other methods in the body.
// Non-datastar requests and datastar form submissions yield
// ErrBinderNotApplicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !isDatastar(r) || isFormEncoded(r) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}

func isFormEncoded(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

func isDatastar(r *http.Request) bool {
	return r.Header.Get(datastarRequestHeader) == "true" || r.URL.Query().Has("datastar")
}
