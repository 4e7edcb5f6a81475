// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "no mods found",
			wantStr: "[NOT_FOUND] no mods found",
		},
		{
			name:    "rename_error",
			code:    errors.ErrRenameFailed,
			message: "cannot rename folder",
			wantStr: "[RENAME_FAILED] cannot rename folder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrStateCorrupt, "state file %s is not a list", "/tmp/s.json")
	assert.Equal(t, "[STATE_CORRUPT] state file /tmp/s.json is not a list", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps_cause", func(t *testing.T) {
		cause := fmt.Errorf("permission denied")
		err := errors.Wrap(cause, errors.ErrRenameFailed, "cannot disable Foo")

		require.NotNil(t, err)
		assert.Equal(t, "[RENAME_FAILED] cannot disable Foo: permission denied", err.Error())
		assert.Same(t, cause, stderrors.Unwrap(err))
	})

	t.Run("nil_cause_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nothing %d", 1))
	})

	t.Run("wrapf_formats", func(t *testing.T) {
		err := errors.Wrapf(fmt.Errorf("disk full"), errors.ErrStateWrite, "cannot save %d entries", 3)
		assert.Equal(t, "[STATE_WRITE] cannot save 3 entries: disk full", err.Error())
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRenameFailed, "rename").
		WithDetail("from", "/mods/A").
		WithDetail("to", "/mods/DISABLED A")

	assert.Equal(t, "/mods/A", err.Details["from"])
	assert.Equal(t, "/mods/DISABLED A", err.Details["to"])

	var zero errors.ModbisectError
	zero.WithDetail("k", 1)
	assert.Equal(t, 1, zero.Details["k"])
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrAborted, "user aborted")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrAborted, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrInterrupted, "")))

	wrapped := fmt.Errorf("run: %w", err)
	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrAborted, "")))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrStateRead, false},
		{"wrapped_in_fmt", fmt.Errorf("ctx: %w", errors.New(errors.ErrStateWrite, "x")), errors.ErrStateWrite, true},
		{"plain_error", fmt.Errorf("plain"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrPrompt, errors.GetErrorCode(errors.New(errors.ErrPrompt, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestGetErrorDetails(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrRenameFailed, "x").WithDetail("path", "/a"))
	assert.Equal(t, "/a", errors.GetErrorDetails(err)["path"])
	assert.Nil(t, errors.GetErrorDetails(fmt.Errorf("plain")))
}
