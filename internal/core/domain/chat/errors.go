package chat

import "errors"

var (
	ErrSessionDoesNotExist = errors.New("chat session does not exist")
	ErrUpstream            = errors.New("completion request failed")
)
