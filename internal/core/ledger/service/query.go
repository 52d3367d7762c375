package service

import (
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

func parseAddr(field, value string) (types.Address, error) {
	address, err := types.ParseAddress(value)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("invalid %s: %w", field, err)
	}
	return address, nil
}

// Balance returns the internal share balance of holder for subject.
func (s *Service) Balance(subject, holder string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	holderAddr, err := parseAddr("holder", holder)
	if err != nil {
		return 0, err
	}
	return tx.ReadBalance(s.state, subjectAddr, holderAddr)
}

// TotalShares returns the sum of internal balances for subject.
func (s *Service) TotalShares(subject string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	return tx.ReadTotalShares(s.state, subjectAddr)
}

// Allowance returns how many of owner's subject shares spender may
// move.
func (s *Service) Allowance(subject, owner, spender string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	ownerAddr, err := parseAddr("owner", owner)
	if err != nil {
		return 0, err
	}
	spenderAddr, err := parseAddr("spender", spender)
	if err != nil {
		return 0, err
	}
	return tx.ReadAllowance(s.state, subjectAddr, ownerAddr, spenderAddr)
}

// KeyPrice returns the subject's presale unit price in wei, as a
// decimal string.
func (s *Service) KeyPrice(subject string) (string, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return "", err
	}
	price, err := tx.ReadKeyPrice(s.state, subjectAddr)
	if err != nil {
		return "", err
	}
	return price.String(), nil
}

// WhitelistCap returns account's unspent presale cap for subject.
func (s *Service) WhitelistCap(subject, account string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	accountAddr, err := parseAddr("account", account)
	if err != nil {
		return 0, err
	}
	return tx.ReadWhitelistCap(s.state, subjectAddr, accountAddr)
}

// Contribution returns account's accepted presale units for subject.
func (s *Service) Contribution(subject, account string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	accountAddr, err := parseAddr("account", account)
	if err != nil {
		return 0, err
	}
	return tx.ReadContribution(s.state, subjectAddr, accountAddr)
}

// ContributionEntry is one pending contribution in arrival order.
type ContributionEntry struct {
	Account string `json:"account"`
	Units   uint64 `json:"units"`
}

// ContributionLog returns the subject's pending contributions in the
// order settlement will replay them.
func (s *Service) ContributionLog(subject string) ([]ContributionEntry, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return nil, err
	}
	records, err := tx.ReadContributionLog(s.state, subjectAddr)
	if err != nil {
		return nil, err
	}
	entries := make([]ContributionEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, ContributionEntry{
			Account: record.Account.String(),
			Units:   record.Units,
		})
	}
	return entries, nil
}

// Proceeds returns the subject's unclaimed presale proceeds in wei, as
// a decimal string.
func (s *Service) Proceeds(subject string) (string, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return "", err
	}
	proceeds, err := tx.ReadProceeds(s.state, subjectAddr)
	if err != nil {
		return "", err
	}
	return proceeds.String(), nil
}

// CustodyBalance returns the subject shares the market venue holds in
// custody for the proxy.
func (s *Service) CustodyBalance(subject string) (uint64, error) {
	subjectAddr, err := parseAddr("subject", subject)
	if err != nil {
		return 0, err
	}
	return s.market.CustodyBalance(subjectAddr, s.config.ProxyAddress)
}
