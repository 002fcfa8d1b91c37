package model

import "errors"

var (
	// Session related errors
	ErrNoSession      = errors.New("no session")
	ErrSessionInvalid = errors.New("session invalid")

	// Auth related errors
	ErrNotAuthenticated = errors.New("not authenticated")

	// Upload related errors
	ErrUploadTooLarge = errors.New("upload too large")
	ErrNotAnImage     = errors.New("file is not a decodable image")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
