package cvi

import "errors"

var (
	ErrInvalidMagic     = errors.New("invalid CVI magic")
	ErrUnsupportedMajor = errors.New("unsupported CVI major version")
	ErrCorruptImage     = errors.New("corrupt CVI image")
)
