package exam

import "errors"

// Domain errors. Callers match them with errors.Is.
var (
	ErrIndexOutOfRange   = errors.New("question index out of range")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrNotActive         = errors.New("no active exam")
	ErrAlreadySubmitted  = errors.New("exam already submitted")
	ErrInvalidTransition = errors.New("action not allowed in the current view")
	ErrInvalidSelection  = errors.New("invalid branch, topic or test selection")
	ErrAdminOnly         = errors.New("question authoring is restricted to administrators")
	ErrUnknownFilter     = errors.New("unknown review filter")
	ErrNoResult          = errors.New("no completed exam to show")
)
