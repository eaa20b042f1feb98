// Copyright 2025 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package providerv1 defines resource types for provider communication.
// This file contains error helper functions for consistent error handling.
package providerv1

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error code. They match any *OperationError with
// the same code through errors.Is.
var (
	ErrConfiguration   = &OperationError{Code: ErrCodeConfiguration}
	ErrNotFound        = &OperationError{Code: ErrCodeNotFound}
	ErrInvalidArgument = &OperationError{Code: ErrCodeInvalidArgument}
	ErrPrecondition    = &OperationError{Code: ErrCodePrecondition}
)

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// Is reports whether target is an *OperationError carrying the same code.
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewOperationError creates a new OperationError with the given code and message.
func NewOperationError(code, message string) *OperationError {
	return &OperationError{
		Code:    code,
		Message: message,
	}
}

// NewOperationErrorWithDetails creates a new OperationError with additional details.
func NewOperationErrorWithDetails(code, message string, details map[string]any) *OperationError {
	return &OperationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewConfigurationError creates a CONFIGURATION_ERROR with a formatted message.
func NewConfigurationError(format string, args ...any) *OperationError {
	return &OperationError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapConfigurationError creates a CONFIGURATION_ERROR from an underlying
// error, keeping the cause in the message.
func WrapConfigurationError(err error, format string, args ...any) *OperationError {
	return &OperationError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("%s: %v", fmt.Sprintf(format, args...), err),
	}
}

// NewNotFoundError creates a NOT_FOUND error for a resource.
func NewNotFoundError(resource, name string) *OperationError {
	return &OperationError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("unknown %s %q", resource, name),
	}
}

// NewInvalidArgumentError creates an INVALID_ARGUMENT error with a formatted message.
func NewInvalidArgumentError(format string, args ...any) *OperationError {
	return &OperationError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewPreconditionError creates a PRECONDITION_FAILED error for a lifecycle
// operation attempted before prepare.
func NewPreconditionError(operation string) *OperationError {
	return &OperationError{
		Code:    ErrCodePrecondition,
		Message: fmt.Sprintf("cannot %s an unprepared provider, call Prepare() first", operation),
	}
}

// AsOperationError converts any error into an *OperationError.
// Errors that are not OperationErrors become CONFIGURATION_ERRORs, which is
// the only category this layer produces from foreign errors.
func AsOperationError(err error) *OperationError {
	if err == nil {
		return nil
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr
	}
	return NewOperationError(ErrCodeConfiguration, err.Error())
}

// ErrorResult creates an OperationResult with an error.
func ErrorResult(err *OperationError) *OperationResult {
	return &OperationResult{
		Success: false,
		Error:   err,
	}
}

// SuccessResult creates an OperationResult with a resource.
func SuccessResult(resource any) *OperationResult {
	return &OperationResult{
		Success:  true,
		Resource: resource,
	}
}

// ResultOf creates an OperationResult from a resource and an error.
func ResultOf(resource any, err error) *OperationResult {
	if err != nil {
		return ErrorResult(AsOperationError(err))
	}
	return SuccessResult(resource)
}
