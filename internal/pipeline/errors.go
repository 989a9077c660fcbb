package pipeline

import (
	"errors"
	"fmt"
)

// ErrEmptyResult means the run completed but no segment was accepted.
var ErrEmptyResult = errors.New("no content passed filtering")

type Stage string

const (
	StageParse   Stage = "parse"
	StageSegment Stage = "segment"
	StageFilter  Stage = "filter"
)

// StageError reports which stage aborted a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failing stage of err, or "" if err is not a StageError.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
