// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestValidateAdminCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
		wantErr  bool
	}{
		{"matching code", "1320", "1320", false},
		{"wrong code", "0000", "1320", true},
		{"empty code", "", "1320", true},
		{"empty expected rejects everything", "1320", "", true},
		{"prefix is not a match", "132", "1320", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminCode(tt.code, tt.expected)
			if tt.wantErr && !errors.Is(err, ErrInvalidAdminCode) {
				t.Errorf("Expected ErrInvalidAdminCode, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected success, got %v", err)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("192.168.1.10", "salt-a")
	h2 := HashIP("192.168.1.10", "salt-a")
	if h1 != h2 {
		t.Error("Expected deterministic hashes for the same IP and salt")
	}

	if len(h1) != 16 {
		t.Errorf("Expected 16 hex chars, got %d (%q)", len(h1), h1)
	}

	if HashIP("192.168.1.10", "salt-b") == h1 {
		t.Error("Expected different salts to produce different hashes")
	}

	if HashIP("192.168.1.11", "salt-a") == h1 {
		t.Error("Expected different IPs to produce different hashes")
	}
}
