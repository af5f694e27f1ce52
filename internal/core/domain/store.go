package domain

import "time"

// Store is the single source of truth for wallets, transactions and mempool
// events. Every mutation is atomic with respect to readers: no
// partial-update state is ever observable. Wallets, the active-wallet
// selection and transactions survive restarts; mempool events and the
// loading/error scalars are transient.
//
// The active wallet is an index into the wallet collection, not a second
// copy: at all times the active wallet is either nil or one of the stored
// wallets.
type Store interface {
	// SetWallets replaces the wallet collection. Balances are coerced to
	// valid non-negative numbers.
	SetWallets(wallets []Wallet)
	// AddWallet appends a wallet. If no wallet is active yet, the new wallet
	// becomes active.
	AddWallet(wallet Wallet)
	// UpdateWallet merges the non-nil fields of the update into the matching
	// wallet. Unknown ids are ignored.
	UpdateWallet(id string, update WalletUpdate)
	// RemoveWallet removes the wallet with the given id. If it was active,
	// the first remaining wallet is promoted, or the active selection is
	// cleared when none remain.
	RemoveWallet(id string)
	// SetActiveWallet points the active selection at the given wallet, or
	// clears it when nil.
	SetActiveWallet(wallet *Wallet)

	// SetTransactions replaces the transaction list.
	SetTransactions(txs []Transaction)
	// ReplaceWalletTransactions atomically replaces the transactions of the
	// given wallet, leaving every other wallet's transactions untouched.
	ReplaceWalletTransactions(walletID string, txs []Transaction)
	// AddTransaction upserts a transaction by id, prepending on insert.
	AddTransaction(tx Transaction)
	// UpdateTransaction merges the non-nil fields of the update into the
	// matching transaction. Unknown ids are ignored.
	UpdateTransaction(id string, update TransactionUpdate)

	// SetMempoolTransactions replaces the mempool list wholesale.
	SetMempoolTransactions(txs []MempoolTransaction)
	// AddMempoolTransaction upserts a mempool record by txid, prepending on
	// insert.
	AddMempoolTransaction(tx MempoolTransaction)

	SetLoading(loading bool)
	SetError(msg string)
	ClearError()
	SetLastUpdated(at time.Time)

	// State returns a consistent snapshot of the whole store.
	State() WalletState
	Wallets() []Wallet
	ActiveWallet() *Wallet
	GetWalletByID(id string) (*Wallet, bool)
	GetTransactionsByWallet(walletID string) []Transaction
	GetTotalBalance() float64
	GetPendingTransactions() []Transaction

	Close()
}
