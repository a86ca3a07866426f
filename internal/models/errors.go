package models

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("missing or invalid fields")
)
