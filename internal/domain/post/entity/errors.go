package entity

import "errors"

// Domain errors for posts
var (
	// Validation errors
	ErrEmptyTopic          = errors.New("topic is required")
	ErrEmptyContent        = errors.New("post content is required")
	ErrContentTooLong      = errors.New("post text exceeds maximum length of 3000 characters")
	ErrScheduledTimeInPast = errors.New("scheduled time must be in the future")
	ErrInvalidStatus       = errors.New("invalid post status")
	ErrInvalidTime         = errors.New("invalid ISO 8601 time")

	// Lifecycle errors
	ErrPostNotFound       = errors.New("post not found")
	ErrNotDraft           = errors.New("post must be in 'draft' status")
	ErrAlreadyPublished   = errors.New("post is already published")
	ErrPublishInProgress  = errors.New("post is being published")
	ErrPublishedImmutable = errors.New("published posts cannot be modified")
	ErrNotDeletable       = errors.New("published posts cannot be deleted from local storage")

	ErrExportDisabled = errors.New("post export is not configured")
)
