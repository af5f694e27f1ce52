package domain

import (
	"time"

	"github.com/satswatch/walletd/pkg/explorer"
)

// TxType tells whether a transaction moved funds towards or away from the
// owning wallet's address.
type TxType string

const (
	TxTypeSent     TxType = "sent"
	TxTypeReceived TxType = "received"
)

// TxStatus is the lifecycle state of a transaction.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

// TransactionInput is a spent output attributed to a transaction. Value is
// expressed in BTC.
type TransactionInput struct {
	Address  string  `json:"address"`
	Value    float64 `json:"value"`
	PrevTxid string  `json:"prevTxid"`
	PrevVout uint32  `json:"prevVout"`
}

// TransactionOutput is an output of a transaction. Value is expressed in
// BTC.
type TransactionOutput struct {
	Address      string  `json:"address"`
	Value        float64 `json:"value"`
	ScriptPubKey string  `json:"scriptPubKey"`
}

// Transaction is the domain view of an on-chain transaction, always derived
// from explorer data and attributed to exactly one wallet. Amounts are
// expressed in BTC.
type Transaction struct {
	ID            string              `json:"id"`
	TxID          string              `json:"txid"`
	WalletID      string              `json:"walletId"`
	Type          TxType              `json:"type"`
	Amount        float64             `json:"amount"`
	Fee           float64             `json:"fee"`
	Confirmations int                 `json:"confirmations"`
	Status        TxStatus            `json:"status"`
	Timestamp     time.Time           `json:"timestamp"`
	BlockHeight   int64               `json:"blockHeight,omitempty"`
	Inputs        []TransactionInput  `json:"inputs"`
	Outputs       []TransactionOutput `json:"outputs"`
}

// TransactionUpdate is a partial update of a transaction, nil fields are
// left untouched.
type TransactionUpdate struct {
	Confirmations *int
	Status        *TxStatus
	BlockHeight   *int64
}

// MempoolTransaction is the raw streaming-origin record pushed by the
// explorer, keyed by txid.
type MempoolTransaction = explorer.TxRecord
