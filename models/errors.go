// Copyright 2025 Jenkins Tools, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package models

import "errors"

// ErrorKind classifies the failure causes a BackendError can carry.
type ErrorKind string

const (
	// ErrKindConnection covers connection and authentication failures
	// against the Jenkins server.
	ErrKindConnection ErrorKind = "connection"
	// ErrKindJobNotFound is returned when the named job does not exist or
	// the user has no permission to see it.
	ErrKindJobNotFound ErrorKind = "job_not_found"
	// ErrKindTimeout is returned when the poll budget is exhausted while
	// the build is still running.
	ErrKindTimeout ErrorKind = "timeout"
)

// BackendError is the single error kind surfaced to callers for all Jenkins
// interaction failures. The Kind distinguishes the cause; Err carries the
// underlying failure when there is one.
type BackendError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// NewBackendError creates a BackendError without an underlying cause.
func NewBackendError(kind ErrorKind, msg string) *BackendError {
	return &BackendError{Kind: kind, Msg: msg}
}

// WrapBackendError creates a BackendError wrapping an underlying failure.
func WrapBackendError(kind ErrorKind, msg string, err error) *BackendError {
	return &BackendError{Kind: kind, Msg: msg, Err: err}
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}

	return e.Msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is reports kind equality, so errors.Is can match against a bare
// &BackendError{Kind: ...} target.
func (e *BackendError) Is(target error) bool {
	var be *BackendError
	if !errors.As(target, &be) {
		return false
	}

	return be.Kind == e.Kind
}

// AsBackendError unwraps err into a *BackendError when possible.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	ok := errors.As(err, &be)

	return be, ok
}
