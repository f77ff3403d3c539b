package service

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found or expired")
)
