package tx

import (
	"errors"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/keylet"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// ErrUnderflow is returned when a debit would drive a balance or an
// allowance below zero.
var ErrUnderflow = errors.New("insufficient balance")

func readEntry(v LedgerView, k keylet.Keylet) (entry.Entry, error) {
	data, err := v.Read(k)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return entry.Decode(data)
}

func writeEntry(v LedgerView, k keylet.Keylet, e entry.Entry) error {
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return v.Update(k, data)
	}
	return v.Insert(k, data)
}

// ReadBalance returns the internal share balance of holder for subject.
// A missing entry reads as zero.
func ReadBalance(v LedgerView, subject, holder types.Address) (uint64, error) {
	e, err := readEntry(v, keylet.Balance(subject, holder))
	if err != nil || e == nil {
		return 0, err
	}
	b, ok := e.(*entry.Balance)
	if !ok {
		return 0, fmt.Errorf("entry is not a balance: %s", e.Type())
	}
	return b.Amount, nil
}

func writeBalance(v LedgerView, subject, holder types.Address, amount uint64) error {
	return writeEntry(v, keylet.Balance(subject, holder), &entry.Balance{
		Subject: subject,
		Holder:  holder,
		Amount:  amount,
	})
}

// ReadTotalShares returns the sum of internal share balances held for
// the subject.
func ReadTotalShares(v LedgerView, subject types.Address) (uint64, error) {
	e, err := readEntry(v, keylet.SubjectRoot(subject))
	if err != nil || e == nil {
		return 0, err
	}
	root, ok := e.(*entry.SubjectRoot)
	if !ok {
		return 0, fmt.Errorf("entry is not a subject root: %s", e.Type())
	}
	return root.TotalShares, nil
}

func writeTotalShares(v LedgerView, subject types.Address, total uint64) error {
	return writeEntry(v, keylet.SubjectRoot(subject), &entry.SubjectRoot{
		Subject:     subject,
		TotalShares: total,
	})
}

// CreditShares adds amount to holder's balance for subject and grows
// the subject's share total by the same amount.
func CreditShares(v LedgerView, subject, holder types.Address, amount uint64) error {
	balance, err := ReadBalance(v, subject, holder)
	if err != nil {
		return err
	}
	if err := writeBalance(v, subject, holder, balance+amount); err != nil {
		return err
	}
	total, err := ReadTotalShares(v, subject)
	if err != nil {
		return err
	}
	return writeTotalShares(v, subject, total+amount)
}

// DebitShares removes amount from holder's balance for subject and
// shrinks the subject's share total. Returns ErrUnderflow when the
// holder does not have amount shares.
func DebitShares(v LedgerView, subject, holder types.Address, amount uint64) error {
	balance, err := ReadBalance(v, subject, holder)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrUnderflow
	}
	if err := writeBalance(v, subject, holder, balance-amount); err != nil {
		return err
	}
	total, err := ReadTotalShares(v, subject)
	if err != nil {
		return err
	}
	if total < amount {
		return fmt.Errorf("subject total %d below debit %d", total, amount)
	}
	return writeTotalShares(v, subject, total-amount)
}

// MoveShares moves amount of subject shares from one holder to another
// without changing the subject's total. A self-transfer is a validated
// no-op. Returns ErrUnderflow when the sender's balance is short.
func MoveShares(v LedgerView, subject, from, to types.Address, amount uint64) error {
	fromBalance, err := ReadBalance(v, subject, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return ErrUnderflow
	}
	if from == to {
		return nil
	}
	if err := writeBalance(v, subject, from, fromBalance-amount); err != nil {
		return err
	}
	toBalance, err := ReadBalance(v, subject, to)
	if err != nil {
		return err
	}
	return writeBalance(v, subject, to, toBalance+amount)
}

// ReadAllowance returns how many of owner's subject shares spender may
// move. A missing entry reads as zero.
func ReadAllowance(v LedgerView, subject, owner, spender types.Address) (uint64, error) {
	e, err := readEntry(v, keylet.Allowance(subject, owner, spender))
	if err != nil || e == nil {
		return 0, err
	}
	a, ok := e.(*entry.Allowance)
	if !ok {
		return 0, fmt.Errorf("entry is not an allowance: %s", e.Type())
	}
	return a.Amount, nil
}

// WriteAllowance sets the allowance to amount, an absolute assignment.
func WriteAllowance(v LedgerView, subject, owner, spender types.Address, amount uint64) error {
	return writeEntry(v, keylet.Allowance(subject, owner, spender), &entry.Allowance{
		Subject: subject,
		Owner:   owner,
		Spender: spender,
		Amount:  amount,
	})
}

// ReadKeyPrice returns the presale unit price for subject, zero if
// never set.
func ReadKeyPrice(v LedgerView, subject types.Address) (wei.Amount, error) {
	e, err := readEntry(v, keylet.PresaleConfig(subject))
	if err != nil || e == nil {
		return wei.Zero(), err
	}
	p, ok := e.(*entry.PresaleConfig)
	if !ok {
		return wei.Zero(), fmt.Errorf("entry is not a presale config: %s", e.Type())
	}
	return p.KeyPrice, nil
}

// WriteKeyPrice sets the presale unit price for subject.
func WriteKeyPrice(v LedgerView, subject types.Address, price wei.Amount) error {
	return writeEntry(v, keylet.PresaleConfig(subject), &entry.PresaleConfig{
		Subject:  subject,
		KeyPrice: price,
	})
}

// ReadWhitelistCap returns account's presale allocation cap for
// subject. Zero means not eligible.
func ReadWhitelistCap(v LedgerView, subject, account types.Address) (uint64, error) {
	e, err := readEntry(v, keylet.Whitelist(subject, account))
	if err != nil || e == nil {
		return 0, err
	}
	w, ok := e.(*entry.Whitelist)
	if !ok {
		return 0, fmt.Errorf("entry is not a whitelist: %s", e.Type())
	}
	return w.Cap, nil
}

// WriteWhitelistCap sets account's presale allocation cap for subject.
func WriteWhitelistCap(v LedgerView, subject, account types.Address, cap uint64) error {
	return writeEntry(v, keylet.Whitelist(subject, account), &entry.Whitelist{
		Subject: subject,
		Account: account,
		Cap:     cap,
	})
}

// ReadContribution returns account's accepted presale units for
// subject.
func ReadContribution(v LedgerView, subject, account types.Address) (uint64, error) {
	e, err := readEntry(v, keylet.Contribution(subject, account))
	if err != nil || e == nil {
		return 0, err
	}
	c, ok := e.(*entry.Contribution)
	if !ok {
		return 0, fmt.Errorf("entry is not a contribution: %s", e.Type())
	}
	return c.Units, nil
}

// AddContribution grows account's accepted presale units for subject.
func AddContribution(v LedgerView, subject, account types.Address, units uint64) error {
	current, err := ReadContribution(v, subject, account)
	if err != nil {
		return err
	}
	return writeEntry(v, keylet.Contribution(subject, account), &entry.Contribution{
		Subject: subject,
		Account: account,
		Units:   current + units,
	})
}

// ReadContributionLog returns the subject's ordered contribution log,
// empty if none.
func ReadContributionLog(v LedgerView, subject types.Address) ([]entry.ContributionRecord, error) {
	e, err := readEntry(v, keylet.ContributionLog(subject))
	if err != nil || e == nil {
		return nil, err
	}
	l, ok := e.(*entry.ContributionLog)
	if !ok {
		return nil, fmt.Errorf("entry is not a contribution log: %s", e.Type())
	}
	return l.Records, nil
}

// AppendContribution records an accepted contribution at the end of
// the subject's ordered log.
func AppendContribution(v LedgerView, subject, account types.Address, units uint64) error {
	records, err := ReadContributionLog(v, subject)
	if err != nil {
		return err
	}
	records = append(records, entry.ContributionRecord{Account: account, Units: units})
	return writeEntry(v, keylet.ContributionLog(subject), &entry.ContributionLog{
		Subject: subject,
		Records: records,
	})
}

// ClearContributionLog removes the subject's contribution log so a
// repeated settlement finds nothing to replay.
func ClearContributionLog(v LedgerView, subject types.Address) error {
	k := keylet.ContributionLog(subject)
	exists, err := v.Exists(k)
	if err != nil || !exists {
		return err
	}
	return v.Erase(k)
}

// ReadProceeds returns the unclaimed presale proceeds owed to subject.
func ReadProceeds(v LedgerView, subject types.Address) (wei.Amount, error) {
	e, err := readEntry(v, keylet.Proceeds(subject))
	if err != nil || e == nil {
		return wei.Zero(), err
	}
	p, ok := e.(*entry.Proceeds)
	if !ok {
		return wei.Zero(), fmt.Errorf("entry is not a proceeds entry: %s", e.Type())
	}
	return p.Amount, nil
}

// AddProceeds grows the subject's unclaimed proceeds by amount.
func AddProceeds(v LedgerView, subject types.Address, amount wei.Amount) error {
	current, err := ReadProceeds(v, subject)
	if err != nil {
		return err
	}
	return writeEntry(v, keylet.Proceeds(subject), &entry.Proceeds{
		Subject: subject,
		Amount:  current.Add(amount),
	})
}

// ZeroProceeds resets the subject's unclaimed proceeds to zero.
func ZeroProceeds(v LedgerView, subject types.Address) error {
	return writeEntry(v, keylet.Proceeds(subject), &entry.Proceeds{
		Subject: subject,
		Amount:  wei.Zero(),
	})
}
