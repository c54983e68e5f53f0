// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

const (
	HeaderCallerAddress = "X-Caller-Address"
	HeaderCallerKey     = "X-Caller-Key"
)

var (
	ErrMissingCaller    = errors.New("X-Caller-Address and X-Caller-Key headers required")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// NewEventID returns a random identifier for a journal entry
func NewEventID() string {
	return uuid.NewString()
}

// ParseAddress parses a 0x-prefixed (or bare) 40 hex digit address
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// GenerateCallerKey creates the HMAC-based key an address presents with its
// requests. This is deterministic and verifiable
func GenerateCallerKey(addr common.Address, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.ToLower(addr.Hex())))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks if the provided key belongs to addr
func ValidateCallerKey(addr common.Address, key, salt string) error {
	expected := GenerateCallerKey(addr, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// CallerFromRequest identifies the caller from the X-Caller-Address and
// X-Caller-Key headers
func CallerFromRequest(r *http.Request, salt string) (common.Address, error) {
	rawAddr := r.Header.Get(HeaderCallerAddress)
	key := r.Header.Get(HeaderCallerKey)
	if rawAddr == "" || key == "" {
		return common.Address{}, ErrMissingCaller
	}

	addr, err := ParseAddress(rawAddr)
	if err != nil {
		return common.Address{}, err
	}
	if err := ValidateCallerKey(addr, key, salt); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}
