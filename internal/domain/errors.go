package domain

import "errors"

var (
	// ErrNotFound indicates the referenced conversation does not exist
	ErrNotFound = errors.New("conversation not found")
	// ErrBusy indicates a reply is already being generated
	ErrBusy = errors.New("a reply is already being generated")
	// ErrEmptyMessage indicates the message was empty after trimming
	ErrEmptyMessage = errors.New("message is empty")
)
