package params

import (
	"errors"
	"reflect"
	"testing"

	"github.com/clearpass-tools/cpapi/internal/apperror"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		wantQuery map[string]string
		wantBody  map[string]string
	}{
		{
			name:      "no tokens",
			tokens:    nil,
			wantQuery: map[string]string{},
			wantBody:  map[string]string{},
		},
		{
			name:      "body parameter",
			tokens:    []string{"username=demo@example.com"},
			wantQuery: map[string]string{},
			wantBody:  map[string]string{"username": "demo@example.com"},
		},
		{
			name:      "query parameter",
			tokens:    []string{"filter==enabled"},
			wantQuery: map[string]string{"filter": "enabled"},
			wantBody:  map[string]string{},
		},
		{
			name:      "empty value",
			tokens:    []string{"notes=", "sort=="},
			wantQuery: map[string]string{"sort": ""},
			wantBody:  map[string]string{"notes": ""},
		},
		{
			name:      "value containing equals",
			tokens:    []string{"expr=a=b"},
			wantQuery: map[string]string{},
			wantBody:  map[string]string{"expr": "a=b"},
		},
		{
			name:      "value with embedded newline",
			tokens:    []string{"notes=line one\nline two"},
			wantQuery: map[string]string{},
			wantBody:  map[string]string{"notes": "line one\nline two"},
		},
		{
			name:      "last duplicate wins",
			tokens:    []string{"role_id=1", "role_id=2"},
			wantQuery: map[string]string{},
			wantBody:  map[string]string{"role_id": "2"},
		},
		{
			name: "client credentials grant request",
			tokens: []string{
				"grant_type=client_credentials",
				"client_id=Client1",
				"client_secret=ClientSecret",
			},
			wantQuery: map[string]string{},
			wantBody: map[string]string{
				"grant_type":    "client_credentials",
				"client_id":     "Client1",
				"client_secret": "ClientSecret",
			},
		},
		{
			name:      "mixed query and body",
			tokens:    []string{"limit==25", "visitor_name=Demo User"},
			wantQuery: map[string]string{"limit": "25"},
			wantBody:  map[string]string{"visitor_name": "Demo User"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, body, err := Classify(tt.tokens)
			if err != nil {
				t.Fatalf("Classify(%v) returned error: %v", tt.tokens, err)
			}
			if !reflect.DeepEqual(query, tt.wantQuery) {
				t.Errorf("query = %v, want %v", query, tt.wantQuery)
			}
			if !reflect.DeepEqual(body, tt.wantBody) {
				t.Errorf("body = %v, want %v", body, tt.wantBody)
			}
		})
	}
}

func TestClassifyInvalidTokens(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantMsg string
	}{
		{
			name:    "single invalid token",
			tokens:  []string{"no-separator"},
			wantMsg: "Invalid parameter(s): no-separator",
		},
		{
			name:    "missing name",
			tokens:  []string{"=value"},
			wantMsg: "Invalid parameter(s): =value",
		},
		{
			name:    "name with invalid characters",
			tokens:  []string{"bad-name=value"},
			wantMsg: "Invalid parameter(s): bad-name=value",
		},
		{
			name:    "all invalid tokens reported in input order",
			tokens:  []string{"role_id=2", "oops", "also bad", "limit==10"},
			wantMsg: "Invalid parameter(s): oops, also bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Classify(tt.tokens)
			if err == nil {
				t.Fatalf("Classify(%v) expected error, got nil", tt.tokens)
			}
			var cfgErr *apperror.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Classify(%v) error type = %T, want *apperror.ConfigError", tt.tokens, err)
			}
			if cfgErr.Message != tt.wantMsg {
				t.Errorf("error = %q, want %q", cfgErr.Message, tt.wantMsg)
			}
		})
	}
}
