// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
)

// Well-known test addresses
var (
	Owner      = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	VoterOne   = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	VoterTwo   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	VoterThree = common.HexToAddress("0x00000000000000000000000000000000000000b3")
	Stranger   = common.HexToAddress("0x00000000000000000000000000000000000000c0")
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		OwnerAddress:  Owner,
		CallerKeySalt: "test-caller-salt",
	}
}

// NewTestLedger returns a ledger owned by Owner with the given voters whitelisted
func NewTestLedger(t *testing.T, voters ...common.Address) *ledger.Ledger {
	t.Helper()
	return NewTestLedgerWith(t, nil, voters...)
}

// NewTestLedgerWith is NewTestLedger with ledger options, applied before
// the voters are whitelisted
func NewTestLedgerWith(t *testing.T, opts []ledger.Option, voters ...common.Address) *ledger.Ledger {
	t.Helper()

	l := ledger.New(Owner, opts...)
	for _, v := range voters {
		if _, err := l.AddVoter(Owner, v); err != nil {
			t.Fatalf("Failed to add test voter %s: %v", v.Hex(), err)
		}
	}
	return l
}

// CallerHeaders returns the identification headers for addr
func CallerHeaders(cfg cliparse.Config, addr common.Address) map[string]string {
	return map[string]string{
		auth.HeaderCallerAddress: addr.Hex(),
		auth.HeaderCallerKey:     auth.GenerateCallerKey(addr, cfg.CallerKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
