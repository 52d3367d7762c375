package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
)

// RequireApplied asserts that a submission was applied.
func RequireApplied(t *testing.T, result *service.SubmitResult) {
	t.Helper()
	require.True(t, result.Applied,
		"expected applied, got %s: %s", result.Result, result.Message)
}

// RequireResult asserts a specific engine result name.
func RequireResult(t *testing.T, result *service.SubmitResult, expected string) {
	t.Helper()
	require.Equal(t, expected, result.Result, "engine result: %s", result.Message)
}

// RequireShares asserts holder's internal balance in subject's shares.
func RequireShares(t *testing.T, env *Env, subject, holder *Account, expected uint64) {
	t.Helper()
	require.Equal(t, expected, env.Balance(subject, holder),
		"balance of %s in %s shares", holder.Name, subject.Name)
}
