package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// ErrorPageParams is passed to ErrorHandlerConfig.ErrorPage.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is passed to ErrorHandlerConfig.ErrorToast.
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning" or "info"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders the full page for plain HTML requests.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders the notification patched into datastar pages.
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string

	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode

	// Translate resolves HTTPError keys. When nil the key is shown as-is.
	Translate func(ctx context.Context, key string) string

	// ShowDetails exposes the raw message of unclassified errors.
	// Leave it off in production.
	ShowDetails bool
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func isClientError(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

func determineErrorType(code int) string {
	switch {
	case isClientError(code):
		return "warning"
	case code >= http.StatusInternalServerError:
		return "error"
	default:
		return "info"
	}
}

func determineLogLevel(code int) slog.Level {
	if isClientError(code) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if cfg.Translate == nil {
		cfg.Translate = func(_ context.Context, key string) string { return key }
	}
	return cfg
}

func formatValidationErrors(ve ValidationError) string {
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var messages []string
	for _, field := range fields {
		messages = append(messages, ve[field]...)
	}
	if len(messages) == 0 {
		return "validation failed"
	}
	return strings.Join(messages, "; ")
}

// ClassifyError maps err to a status code and a displayable message.
// Validation errors win over HTTP errors; everything else is a 500.
func ClassifyError(ctx context.Context, err error, cfg ErrorHandlerConfig) ErrorInfo {
	cfg = setConfigDefaults(cfg)
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    cfg.Translate(ctx, ErrInternalServerError.Key),
	}
	if cfg.ShowDetails {
		info.Message = fmt.Sprintf("%s: %v", info.Message, err)
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = cfg.Translate(ctx, httpErr.Key)
	}

	var ve ValidationError
	if !errors.As(err, &ve) {
		if errs := validator.ExtractValidationErrors(err); errs != nil {
			ve = ValidationErrorFrom(errs)
		}
	}
	if ve != nil {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = formatValidationErrors(ve)
	}

	info.Type = determineErrorType(info.StatusCode)
	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// wantsJSON reports whether the client asked for JSON rather than HTML.
func wantsJSON(r *http.Request) bool {
	if IsDataStar(r) {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func logError(log *slog.Logger, r *http.Request, err error, info ErrorInfo) {
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

func renderDataStarResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.WarnContext(ctx, "no error toast component configured", logger.Component("error_handler"))
		return
	}

	resp := Templ(
		cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: requestID}),
		WithTarget(cfg.ToastTarget),
		WithPatchMode(cfg.ToastMode),
	)
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.ErrorContext(ctx, "failed to render error toast", logger.Error(err), logger.Event("render_error_toast"))
	}
}

func renderHTTPResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}

	page := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})
	if err := TemplWithStatus(info.StatusCode, page).Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.ErrorContext(ctx, "failed to render error page", logger.Error(err), logger.Event("render_error_page"))
	}
}

// NewErrorHandler builds the error handler shared by every route. It logs
// the error and answers with a toast patch for datastar requests, a JSON
// error for API clients and an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := ClassifyError(r.Context(), err, cfg)
		logError(log, r, err, info)

		switch {
		case IsDataStar(r):
			renderDataStarResponse(ctx, cfg, info, requestid.FromContext(r.Context()), log)
		case wantsJSON(r):
			resp := JSONError(err)
			if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
				log.ErrorContext(ctx, "failed to render json error", logger.Error(renderErr))
			}
		default:
			renderHTTPResponse(ctx, cfg, info, requestid.FromContext(r.Context()), log)
		}
	}
}
