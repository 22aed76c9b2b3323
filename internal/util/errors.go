package util

import "errors"

// 业务错误定义
var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrPersonaNotFound = errors.New("persona not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEntryNotFound   = errors.New("journal entry not found")

	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidOption    = errors.New("invalid option for question")
	ErrInvalidMediaKind    = errors.New("invalid media kind")
	ErrAudioTooLong        = errors.New("audio exceeds maximum duration")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
