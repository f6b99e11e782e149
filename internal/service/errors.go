package service

import "errors"

var (
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidAttempt   = errors.New("invalid attempt")
)
