package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks user input rejected before any model call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFieldAlreadySet is returned when a stage output would be overwritten.
	ErrFieldAlreadySet = errors.New("state field already set")
	// ErrFieldNotReadable is returned when a stage reads a field no earlier stage produced.
	ErrFieldNotReadable = errors.New("state field not readable")
	// ErrStageOrder is returned for a stage list that reads itself or a later stage.
	ErrStageOrder = errors.New("invalid stage order")
	// ErrUnknownVariant is returned for a variant name outside Variants().
	ErrUnknownVariant = errors.New("unknown pipeline variant")
)

// StageError names the stage that terminated a run.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
