package domain

import (
	"math"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// MaxWalletNameLength is the maximum length of a wallet name.
	MaxWalletNameLength = 50
	// MinAddressLength and MaxAddressLength bound the accepted address
	// strings before any real decoding happens.
	MinAddressLength = 26
	MaxAddressLength = 62
)

// Wallet is a tracked Bitcoin address with a user-given name. The balance is
// expressed in BTC and is derived from explorer data, never entered by the
// user.
type Wallet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Balance   float64   `json:"balance"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WalletUpdate is a partial update of a wallet, nil fields are left
// untouched. The active-wallet selection is not updatable here, it belongs
// to SetActiveWallet.
type WalletUpdate struct {
	Name      *string
	Balance   *float64
	UpdatedAt *time.Time
}

// CoerceBalance maps any invalid balance value (NaN, infinite, negative) to
// 0 so that every wallet always carries a renderable non-negative number.
func CoerceBalance(balance float64) float64 {
	if math.IsNaN(balance) || math.IsInf(balance, 0) || balance < 0 {
		return 0
	}
	return balance
}

// ValidateWalletName checks the name constraints for a wallet.
func ValidateWalletName(name string) error {
	if len(name) <= 0 {
		return ErrMissingNameOrAddress
	}
	if len(name) > MaxWalletNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateAddress checks that the given string decodes as a mainnet Bitcoin
// address.
func ValidateAddress(address string) error {
	if len(address) <= 0 {
		return ErrMissingNameOrAddress
	}
	if len(address) < MinAddressLength || len(address) > MaxAddressLength {
		return ErrInvalidAddress
	}
	if _, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams); err != nil {
		return ErrInvalidAddress
	}
	return nil
}
