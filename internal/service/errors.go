package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPromptRequired   = fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	ErrNotTravelRelated = fmt.Errorf("%w: prompt is not travel related", ErrInvalidInput)
	ErrGeneration       = errors.New("generation failed")
)
