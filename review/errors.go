/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import "fmt"

// The pipeline classifies failures by stage. None of these are recovered
// or retried; each terminates the invocation with a non-zero exit.

// FetchError wraps a hosting-API read failure.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching pull request: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InferenceError wraps an LLM call failure.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("running inference: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// PublishError wraps a hosting-API write failure.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing review comment: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
