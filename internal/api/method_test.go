package api

import (
	"errors"
	"testing"

	"github.com/clearpass-tools/cpapi/internal/apperror"
)

func TestValidateMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GET", "GET"},
		{"get", "GET"},
		{"Get", "GET"},
		{"post", "POST"},
		{"Patch", "PATCH"},
		{"put", "PUT"},
		{"delete", "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := ValidateMethod(tt.method)
			if err != nil {
				t.Fatalf("ValidateMethod(%q) returned error: %v", tt.method, err)
			}
			if got != tt.want {
				t.Errorf("ValidateMethod(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestValidateMethodInvalid(t *testing.T) {
	for _, method := range []string{"FETCH", "head", "OPTIONS", ""} {
		t.Run("invalid "+method, func(t *testing.T) {
			_, err := ValidateMethod(method)
			if err == nil {
				t.Fatalf("ValidateMethod(%q) expected error, got nil", method)
			}
			var cfgErr *apperror.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error type = %T, want *apperror.ConfigError", err)
			}
			want := "Invalid HTTP method: " + method
			if cfgErr.Message != want {
				t.Errorf("error = %q, want %q", cfgErr.Message, want)
			}
		})
	}
}
