package domain

import "time"

// WalletState is a consistent snapshot of everything the store holds, meant
// for consumers that render or inspect the whole state at once.
type WalletState struct {
	Wallets             []Wallet
	ActiveWallet        *Wallet
	Transactions        []Transaction
	MempoolTransactions []MempoolTransaction
	IsLoading           bool
	Error               string
	LastUpdated         *time.Time
}
