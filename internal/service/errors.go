package service

import (
	"errors"

	"backtrack/internal/domain"
)

var (
	ErrInvalidAvatar       = domain.ErrInvalidAvatar
	ErrAvatarNotFound      = errors.New("avatar not found")
	ErrInvalidGranularity  = errors.New("invalid time granularity")
	ErrSightingPairing     = errors.New("sighting date and time granularity must be set together")
	ErrInvalidSightingDate = errors.New("invalid sighting date")
	ErrNoteTooLong         = errors.New("note too long")
	ErrRateLimited         = errors.New("too many posts")
	ErrLocationNotFound    = errors.New("location not found")
)
