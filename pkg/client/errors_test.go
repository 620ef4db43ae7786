package client

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorClass
	}{
		{200, ""},
		{304, ""},
		{400, ErrorClassClient},
		{403, ErrorClassClient},
		{404, ErrorClassClient},
		{500, ErrorClassServer},
		{503, ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "status error",
			err: &APIError{
				StatusCode: 400,
				ErrorClass: ErrorClassClient,
				Endpoint:   "/vacancies",
				Message:    `{"errors":[{"type":"bad_argument"}]}`,
			},
			expected: `vacancy api client error (status 400) on /vacancies: {"errors":[{"type":"bad_argument"}]}`,
		},
		{
			name: "network error",
			err: &APIError{
				ErrorClass: ErrorClassNetwork,
				Endpoint:   "/vacancies",
				Message:    "request failed",
				Err:        io.ErrUnexpectedEOF,
			},
			expected: "vacancy api network error (status 0) on /vacancies: request failed: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	err := fmt.Errorf("fetch page 3: %w", &APIError{ErrorClass: ErrorClassNetwork, Err: io.EOF})

	if !errors.Is(err, io.EOF) {
		t.Error("errors.Is should reach the wrapped network error")
	}
	if !IsTransportError(err) {
		t.Error("IsTransportError should detect a wrapped *APIError")
	}
	if IsTransportError(io.EOF) {
		t.Error("IsTransportError should be false for plain errors")
	}
}
