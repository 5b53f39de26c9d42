// Package services implements the business logic of the danger meter: the
// comment ledger, score bookkeeping, and the alert flag. This file
// centralizes the service-level error values so they can be consistently
// returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrEmptyComment is returned when a submission carries neither text
	// nor an attachment.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrAttachmentTooLarge is returned when an attachment payload exceeds
	// the configured size limit.
	ErrAttachmentTooLarge = errors.New("attachment too large")

	// ErrWrongPassword is returned when the supplied deletion password does
	// not match the document's deletion password. It is checked before
	// comment existence, so callers see it even for unknown ids.
	ErrWrongPassword = errors.New("wrong deletion password")
)
