package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrContentNotFound    = errors.New("content not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz is not published yet")
	ErrUserNotFound       = errors.New("user not found")
	ErrProgressNotFound   = errors.New("no progress found for this content")
	ErrInvalidStartedAt   = errors.New("startedAt must be a valid past-or-present timestamp")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrInvalidMimeType    = errors.New("invalid file type")
)
