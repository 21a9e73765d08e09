package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize bounds JSON request bodies.
const DefaultMaxJSONSize = 1 << 20

// JSON binds an application/json body. Unknown fields and trailing data are
// rejected. Datastar requests are left to Signals, which reads the same body.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" || isDatastar(r) {
			return ErrBinderNotApplicable
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: read body: %v", ErrInvalidJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrInvalidJSON, DefaultMaxJSONSize)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
