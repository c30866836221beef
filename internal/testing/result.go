package testing

import (
	"testing"

	"github.com/slopestore/slopestored/internal/core/tx"
)

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the transaction engine result code name (e.g., "tesSUCCESS").
	Code string

	// Result is the numeric engine result.
	Result tx.Result

	// Success indicates whether the transaction was applied.
	Success bool

	// Message provides additional details about the result.
	Message string
}

// RequireTxSuccess fails the test unless the transaction was applied.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	if !result.Success {
		t.Fatalf("expected tesSUCCESS, got %s (%s)", result.Code, result.Message)
	}
}

// RequireTxResult fails the test unless the transaction ended with the
// given result code name.
func RequireTxResult(t *testing.T, result TxResult, code string) {
	t.Helper()
	if result.Code != code {
		t.Fatalf("expected %s, got %s (%s)", code, result.Code, result.Message)
	}
}
