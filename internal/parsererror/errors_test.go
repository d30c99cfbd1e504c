package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "without row",
			err: &ParseError{
				Parser: "CSV",
				Field:  "Amount",
				Value:  "abc",
				Err:    errors.New("invalid decimal"),
			},
			expected: "CSV: failed to parse Amount='abc': invalid decimal",
		},
		{
			name: "with row",
			err: &ParseError{
				Parser: "CSV",
				Row:    3,
				Field:  "Date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "CSV: row 3: failed to parse Date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Parser: "CSV", Field: "Amount", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "/tmp/in.csv", Reason: "file is empty"}
	assert.Equal(t, "validation failed for /tmp/in.csv: file is empty", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "in.csv",
		ExpectedFormat: "CSV with a Payee or Description column",
		Msg:            "missing merchant column",
	}
	assert.Equal(t,
		"invalid format in file 'in.csv': missing merchant column. Expected: CSV with a Payee or Description column",
		err.Error())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("postgres", "insert vendor", cause)

	require.Error(t, err)
	assert.Equal(t, "postgres store: insert vendor: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsStorageError(fmt.Errorf("resolve: %w", err)))
	assert.False(t, IsStorageError(cause))

	assert.NoError(t, NewStorageError("postgres", "insert vendor", nil))
}
