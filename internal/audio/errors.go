package audio

import "errors"

var (
	ErrEmptyFrame     = errors.New("audio: empty frame")
	ErrContextRate    = errors.New("audio: context already initialized at another sample rate")
	ErrUnknownBackend = errors.New("audio: unknown backend")
)
