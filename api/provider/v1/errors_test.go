//go:build unit

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

package providerv1

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewOperationErrorWithDetails(t *testing.T) {
	details := map[string]any{
		"bladeType": "compute",
		"instance":  3,
	}

	err := NewOperationErrorWithDetails(ErrCodeInvalidArgument, "instance out of range", details)

	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidArgument)
	}
	if err.Error() != "instance out of range" {
		t.Errorf("Error() = %q, want %q", err.Error(), "instance out of range")
	}
	if err.Details["bladeType"] != "compute" {
		t.Errorf("Details[bladeType] = %v, want %v", err.Details["bladeType"], "compute")
	}
}

func TestOperationError_ErrorFallsBackToCode(t *testing.T) {
	err := &OperationError{Code: ErrCodeNotFound}
	if err.Error() != ErrCodeNotFound {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrCodeNotFound)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("blade type", "compute")

	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeNotFound)
	}
	if !strings.Contains(err.Message, "blade type") {
		t.Errorf("Message should contain 'blade type': %q", err.Message)
	}
	if !strings.Contains(err.Message, "compute") {
		t.Errorf("Message should contain 'compute': %q", err.Message)
	}
}

func TestNewPreconditionError(t *testing.T) {
	err := NewPreconditionError("deploy")

	if err.Code != ErrCodePrecondition {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodePrecondition)
	}
	want := "cannot deploy an unprepared provider, call Prepare() first"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestWrapConfigurationError(t *testing.T) {
	err := WrapConfigurationError(errors.New("boom"), "cannot read %q", "config.yaml")

	if err.Code != ErrCodeConfiguration {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeConfiguration)
	}
	if err.Message != `cannot read "config.yaml": boom` {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestOperationError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same code",
			err:    NewNotFoundError("blade type", "x"),
			target: ErrNotFound,
			want:   true,
		},
		{
			name:   "different code",
			err:    NewNotFoundError("blade type", "x"),
			target: ErrConfiguration,
			want:   false,
		},
		{
			name:   "wrapped",
			err:    fmt.Errorf("outer: %w", NewInvalidArgumentError("bad instance %d", 7)),
			target: ErrInvalidArgument,
			want:   true,
		},
		{
			name:   "foreign error",
			err:    errors.New("plain"),
			target: ErrPrecondition,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsOperationError(t *testing.T) {
	if AsOperationError(nil) != nil {
		t.Error("AsOperationError(nil) should be nil")
	}

	orig := NewPreconditionError("validate")
	if got := AsOperationError(fmt.Errorf("wrapped: %w", orig)); got != orig {
		t.Errorf("AsOperationError() = %v, want the wrapped error", got)
	}

	got := AsOperationError(errors.New("plain"))
	if got.Code != ErrCodeConfiguration {
		t.Errorf("Code = %q, want %q", got.Code, ErrCodeConfiguration)
	}
	if got.Message != "plain" {
		t.Errorf("Message = %q, want %q", got.Message, "plain")
	}
}

func TestResultOf(t *testing.T) {
	ok := ResultOf([]string{"compute"}, nil)
	if !ok.Success || ok.Error != nil {
		t.Errorf("ResultOf(resource, nil) = %+v, want success", ok)
	}

	failed := ResultOf(nil, NewNotFoundError("interconnect", "net9"))
	if failed.Success {
		t.Error("ResultOf(nil, err) should not succeed")
	}
	if failed.Error == nil || failed.Error.Code != ErrCodeNotFound {
		t.Errorf("ResultOf(nil, err).Error = %+v, want NOT_FOUND", failed.Error)
	}
}
