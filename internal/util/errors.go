package util

import "errors"

var (
	ErrUserNotFound    = errors.New("User not found")
	ErrAINotConfigured = errors.New("AI API not initialized - missing API key")
)
