// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrInvalidAdminCode is returned when the supplied admin code does not
// match the configured one.
var ErrInvalidAdminCode = errors.New("invalid admin code")

// ValidateAdminCode checks the supplied code against the configured one
// using a constant-time compare.
func ValidateAdminCode(code, expected string) error {
	if code == "" || expected == "" {
		return ErrInvalidAdminCode
	}
	if !hmac.Equal([]byte(code), []byte(expected)) {
		return ErrInvalidAdminCode
	}
	return nil
}

// HashIP creates a one-way salted hash of an IP address so request logs can
// correlate nominations per device without storing the address itself.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for correlation
	return hex.EncodeToString(sum[:8])
}
