package testing

import (
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

func common(typ tx.Type, payment wei.Amount) tx.Common {
	c := tx.Common{TransactionType: typ.String()}
	if !payment.IsZero() {
		c.Payment = payment.String()
	}
	return c
}

// Snipe buys the submitter's own shares at the venue.
func Snipe(amount uint64, payment wei.Amount) *tx.SnipeShares {
	return &tx.SnipeShares{
		Common: common(tx.TypeSnipeShares, payment),
		Amount: amount,
	}
}

// Buy buys subject shares at the venue and credits destination.
func Buy(subject, destination *Account, amount uint64, payment wei.Amount) *tx.BuyShares {
	return &tx.BuyShares{
		Common:      common(tx.TypeBuyShares, payment),
		Subject:     subject.Address.String(),
		Destination: destination.Address.String(),
		Amount:      amount,
	}
}

// Sell sells the submitter's internal shares back to the venue.
func Sell(subject *Account, amount uint64) *tx.SellShares {
	return &tx.SellShares{
		Common:  common(tx.TypeSellShares, wei.Zero()),
		Subject: subject.Address.String(),
		Amount:  amount,
	}
}

// Transfer moves internal shares from the submitter to destination.
func Transfer(subject, destination *Account, amount uint64) *tx.TransferShares {
	return &tx.TransferShares{
		Common:      common(tx.TypeTransferShares, wei.Zero()),
		Subject:     subject.Address.String(),
		Destination: destination.Address.String(),
		Amount:      amount,
	}
}

// TransferBatch moves internal shares to several destinations
// atomically. Subjects, destinations and amounts pair up by index.
func TransferBatch(subjects, destinations []*Account, amounts []uint64) *tx.TransferSharesBatch {
	subjectAddrs := make([]string, len(subjects))
	for i, subject := range subjects {
		subjectAddrs[i] = subject.Address.String()
	}
	destinationAddrs := make([]string, len(destinations))
	for i, destination := range destinations {
		destinationAddrs[i] = destination.Address.String()
	}
	return &tx.TransferSharesBatch{
		Common:       common(tx.TypeTransferSharesBatch, wei.Zero()),
		Subjects:     subjectAddrs,
		Destinations: destinationAddrs,
		Amounts:      amounts,
	}
}

// Approve sets spender's allowance over the submitter's shares.
func Approve(subject, spender *Account, amount uint64) *tx.ApproveShares {
	return &tx.ApproveShares{
		Common:  common(tx.TypeApproveShares, wei.Zero()),
		Subject: subject.Address.String(),
		Spender: spender.Address.String(),
		Amount:  amount,
	}
}

// TransferFrom spends the submitter's allowance over owner's shares.
func TransferFrom(subject, owner, destination *Account, amount uint64) *tx.TransferSharesFrom {
	return &tx.TransferSharesFrom{
		Common:      common(tx.TypeTransferSharesFrom, wei.Zero()),
		Subject:     subject.Address.String(),
		Owner:       owner.Address.String(),
		Destination: destination.Address.String(),
		Amount:      amount,
	}
}

// SetPrice sets the submitter's presale unit price.
func SetPrice(price wei.Amount) *tx.SetKeyPrice {
	return &tx.SetKeyPrice{
		Common:   common(tx.TypeSetKeyPrice, wei.Zero()),
		KeyPrice: price.String(),
	}
}

// Whitelist grants account a presale contribution cap on the
// submitter's presale.
func Whitelist(account *Account, cap uint64) *tx.SetWhitelist {
	return &tx.SetWhitelist{
		Common:  common(tx.TypeSetWhitelist, wei.Zero()),
		Account: account.Address.String(),
		Cap:     cap,
	}
}

// Contribute pays into subject's presale for units future shares.
func Contribute(subject *Account, units uint64, payment wei.Amount) *tx.ContributePresale {
	return &tx.ContributePresale{
		Common:  common(tx.TypeContributePresale, payment),
		Subject: subject.Address.String(),
		Units:   units,
	}
}

// Settle distributes the submitter's presale log from their internal
// balance.
func Settle(subject *Account) *tx.SettleContributors {
	return &tx.SettleContributors{
		Common:  common(tx.TypeSettleContributors, wei.Zero()),
		Subject: subject.Address.String(),
	}
}

// Claim pays out the submitter's accumulated presale proceeds.
func Claim(subject *Account) *tx.ClaimProceeds {
	return &tx.ClaimProceeds{
		Common:  common(tx.TypeClaimProceeds, wei.Zero()),
		Subject: subject.Address.String(),
	}
}
