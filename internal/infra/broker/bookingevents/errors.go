package bookingevents

import "errors"

var (
	ErrDeclareQueue = errors.New("bookingevents.publisher: failed to declare queue")
	ErrEncodeEvent  = errors.New("bookingevents.publisher: failed to encode event")
	ErrPublish      = errors.New("bookingevents.publisher: failed to publish event")
)
