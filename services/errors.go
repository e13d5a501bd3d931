package services

import "fmt"

// ValidationError means the caller sent a configuration that fails a
// precondition. Its message is safe to return to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PredictionError wraps any failure past validation: the trained pipeline
// rejecting the row, or an unrepresentable price.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string { return "Prediction error: " + e.Err.Error() }

func (e *PredictionError) Unwrap() error { return e.Err }

// StartupError is fatal: the process must not start listening.
type StartupError struct {
	Component string
	Err       error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }
