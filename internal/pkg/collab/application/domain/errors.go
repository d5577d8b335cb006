package collab

import "errors"

// Domain-level errors for collaboration behaviors
var (
	ErrInvalidStatus = errors.New("collab: status must be one of pending, in_progress, completed, on_hold")
	ErrMissingField  = errors.New("collab: required field is missing")
	ErrEmptyRemark   = errors.New("collab: remark text is empty")
	ErrNotFound      = errors.New("collab: resource not found")
	ErrNotMember     = errors.New("collab: user is not a member of the team")
	ErrUnauthorized  = errors.New("collab: credential is invalid or expired")
	ErrForbidden     = errors.New("collab: user may not perform this action")
)
