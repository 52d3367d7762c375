package keylet

import (
	"testing"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestKeyletsAreStable(t *testing.T) {
	a := Balance(testAddr(1), testAddr(2))
	b := Balance(testAddr(1), testAddr(2))
	if a != b {
		t.Fatalf("same inputs produced different keylets:\n  %x\n  %x", a.Key, b.Key)
	}
	if a.Type != entry.TypeBalance {
		t.Errorf("Balance keylet type = %s, want Balance", a.Type)
	}
}

func TestKeyletsDistinguishOperands(t *testing.T) {
	if Balance(testAddr(1), testAddr(2)) == Balance(testAddr(2), testAddr(1)) {
		t.Error("balance keylet must depend on operand order")
	}
	if Allowance(testAddr(1), testAddr(2), testAddr(3)) == Allowance(testAddr(1), testAddr(3), testAddr(2)) {
		t.Error("allowance keylet must distinguish owner from spender")
	}
}

func TestSpacesDoNotCollide(t *testing.T) {
	subject := testAddr(1)
	account := testAddr(2)

	keys := map[[32]byte]string{}
	for name, k := range map[string]Keylet{
		"balance":      Balance(subject, account),
		"whitelist":    Whitelist(subject, account),
		"contribution": Contribution(subject, account),
		"subjectRoot":  SubjectRoot(subject),
		"presale":      PresaleConfig(subject),
		"contribLog":   ContributionLog(subject),
		"proceeds":     Proceeds(subject),
	} {
		if prev, ok := keys[k.Key]; ok {
			t.Fatalf("keylet collision between %s and %s", prev, name)
		}
		keys[k.Key] = name
	}
}
