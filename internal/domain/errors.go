package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrReferenceNotFound  = errors.New("referenced entity not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInUse              = errors.New("entity is still referenced")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
