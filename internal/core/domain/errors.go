package domain

import "errors"

// Sentinel errors shared across services and repositories. The exact
// message text of ErrNotAuthorized and ErrDuplicateField is part of the
// public API contract and must not change.
var (
	ErrNotAuthorized  = errors.New("Not authorized to access this route")
	ErrDuplicateField = errors.New("Duplicate field value entered")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")

	ErrUserNotFound     = errors.New("user not found")
	ErrBootcampNotFound = errors.New("bootcamp not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrReviewNotFound   = errors.New("review not found")

	ErrBootcampExists = errors.New("user has already published a bootcamp")
	ErrValidation     = errors.New("validation failed")
)
