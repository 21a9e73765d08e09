package contact

import "errors"

var (
	ErrInvalidConfig  = errors.New("contact: invalid configuration")
	ErrEmptyFormID    = errors.New("contact: empty form id")
	ErrStateNotFound  = errors.New("contact: form state not found")
	ErrStateStore     = errors.New("contact: form state store failed")
	ErrArchiveFailed  = errors.New("contact: failed to archive submission")
	ErrListFailed     = errors.New("contact: failed to list submissions")
	ErrNotifyFailed   = errors.New("contact: failed to send notification")
	ErrInvalidPayload = errors.New("contact: invalid stored form state")
)
