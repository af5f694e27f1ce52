package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/satswatch/walletd/internal/core/domain"
	"github.com/satswatch/walletd/pkg/explorer"
)

// CreateWallet validates and stores a new wallet, then backfills its
// balance and transaction history in a detached task. Creation succeeds
// immediately, data arrives shortly after.
func (s *walletService) CreateWallet(
	name, address string,
) (*domain.Wallet, OperationResult) {
	if err := domain.ValidateWalletName(name); err != nil {
		return nil, s.fail(err.Error())
	}
	if err := domain.ValidateAddress(address); err != nil {
		return nil, s.fail(err.Error())
	}

	for _, w := range s.store.Wallets() {
		if w.Address == address {
			return nil, s.fail(domain.ErrDuplicateAddress.Error())
		}
		if w.Name == name {
			return nil, s.fail(domain.ErrDuplicateName.Error())
		}
	}

	hadWallets := len(s.store.Wallets()) > 0

	now := time.Now()
	wallet := domain.Wallet{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.AddWallet(wallet)
	s.store.ClearError()

	if !hadWallets {
		// first wallet: the store made it active, bind the stream to it and
		// start the refresh loop
		s.connectStream(wallet.Address)
		s.startRefreshLoop()
	}

	go func() {
		s.FetchWalletBalance(wallet.ID)
		s.FetchWalletTransactions(wallet.ID)
	}()

	return &wallet, OperationResult{Success: true, Message: "wallet created"}
}

// EditWallet merges the given update into the wallet. Renames are checked
// for uniqueness against the other wallets.
func (s *walletService) EditWallet(
	id string, update domain.WalletUpdate,
) OperationResult {
	if _, ok := s.store.GetWalletByID(id); !ok {
		return s.fail(domain.ErrWalletNotFound.Error())
	}

	if update.Name != nil {
		if err := domain.ValidateWalletName(*update.Name); err != nil {
			return s.fail(err.Error())
		}
		for _, w := range s.store.Wallets() {
			if w.ID != id && w.Name == *update.Name {
				return s.fail(domain.ErrDuplicateName.Error())
			}
		}
	}

	now := time.Now()
	update.UpdatedAt = &now
	s.store.UpdateWallet(id, update)
	s.store.ClearError()

	return OperationResult{Success: true, Message: "wallet updated"}
}

// DeleteWallet removes the wallet and prunes its transactions. If it was
// the last wallet the stream and the refresh loop are torn down; if it was
// the active one the stream is re-bound to the promoted wallet.
func (s *walletService) DeleteWallet(id string) OperationResult {
	wallet, ok := s.store.GetWalletByID(id)
	if !ok {
		return s.fail(domain.ErrWalletNotFound.Error())
	}

	wasActive := false
	if active := s.store.ActiveWallet(); active != nil && active.ID == id {
		wasActive = true
	}

	s.store.RemoveWallet(id)
	s.store.ReplaceWalletTransactions(id, nil)
	s.store.ClearError()

	remaining := s.store.Wallets()
	if len(remaining) == 0 {
		s.streamerSvc.Disconnect()
		s.stopRefreshLoop()
	} else if wasActive {
		if active := s.store.ActiveWallet(); active != nil {
			s.streamerSvc.Disconnect()
			s.connectStream(active.Address)
		}
	}

	log.Debugf("deleted wallet %s (%s)", wallet.Name, id)
	return OperationResult{Success: true, Message: "wallet deleted"}
}

// SetActiveWallet switches the active selection and re-binds the stream so
// that exactly one subscription is live at a time, always for the active
// wallet's address.
func (s *walletService) SetActiveWallet(id string) OperationResult {
	wallet, ok := s.store.GetWalletByID(id)
	if !ok {
		return s.fail(domain.ErrWalletNotFound.Error())
	}

	s.streamerSvc.Disconnect()
	s.store.SetActiveWallet(wallet)
	s.store.ClearError()
	s.connectStream(wallet.Address)

	return OperationResult{Success: true, Message: "active wallet changed"}
}

// FetchWalletBalance refreshes the wallet's balance from the explorer. On
// failure the last known balance is kept, staleness is preferred over
// erroring the view.
func (s *walletService) FetchWalletBalance(walletID string) {
	wallet, ok := s.store.GetWalletByID(walletID)
	if !ok {
		return
	}

	info, err := s.explorerSvc.GetAddressInfo(wallet.Address)
	if err != nil {
		log.WithError(err).Debugf(
			"failed to fetch balance for address %s", wallet.Address,
		)
		return
	}

	balance := domain.CoerceBalance(
		btcutil.Amount(info.FundedTxoSum - info.SpentTxoSum).ToBTC(),
	)
	now := time.Now()
	s.store.UpdateWallet(walletID, domain.WalletUpdate{
		Balance:   &balance,
		UpdatedAt: &now,
	})
}

// FetchWalletTransactions refreshes the wallet's transaction history,
// replacing only this wallet's transactions and leaving the other wallets'
// untouched.
func (s *walletService) FetchWalletTransactions(walletID string) {
	wallet, ok := s.store.GetWalletByID(walletID)
	if !ok {
		return
	}

	records, err := s.explorerSvc.GetAddressTransactions(
		wallet.Address, s.opts.TxsPerPage,
	)
	if err != nil {
		log.WithError(err).Debugf(
			"failed to fetch transactions for address %s", wallet.Address,
		)
		return
	}

	tip, _ := s.explorerSvc.GetBlockHeight()

	txs := make([]domain.Transaction, 0, len(records))
	for _, record := range records {
		txs = append(txs, mapTransaction(wallet, record, int64(tip)))
	}

	s.store.ReplaceWalletTransactions(walletID, txs)
}

// RefreshWallets refreshes balance and transactions for every wallet
// concurrently. A failing wallet never aborts the others, each fetch owns
// its errors.
func (s *walletService) RefreshWallets() {
	wallets := s.store.Wallets()
	if len(wallets) == 0 {
		return
	}

	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	wg := &sync.WaitGroup{}
	for _, wallet := range wallets {
		wg.Add(1)
		go func(walletID string) {
			defer wg.Done()
			s.FetchWalletBalance(walletID)
			s.FetchWalletTransactions(walletID)
		}(wallet.ID)
	}
	wg.Wait()

	s.store.SetLastUpdated(time.Now())
}

// FetchMempoolTransactions replaces the store's mempool view with the
// current global mempool, capped to the view limit.
func (s *walletService) FetchMempoolTransactions() {
	records, _ := s.explorerSvc.GetMempoolTransactions()
	if len(records) > s.opts.MempoolViewLimit {
		records = records[:s.opts.MempoolViewLimit]
	}
	s.store.SetMempoolTransactions(records)
}

// GetRecommendedFees returns the current fee estimations, demo values when
// the explorer is unreachable.
func (s *walletService) GetRecommendedFees() *explorer.RecommendedFees {
	fees, _ := s.explorerSvc.GetRecommendedFees()
	return fees
}

func (s *walletService) fail(msg string) OperationResult {
	s.store.SetError(msg)
	return OperationResult{Success: false, Message: msg}
}

// mapTransaction normalizes a raw explorer record into a domain transaction
// attributed to the given wallet. Amounts are converted from satoshis to
// BTC; the amount is the absolute net value delta of the wallet's own
// address across inputs and outputs.
func mapTransaction(
	wallet *domain.Wallet, record explorer.TxRecord, tip int64,
) domain.Transaction {
	var sent, received int64
	inputs := make([]domain.TransactionInput, 0, len(record.Vin))
	for _, in := range record.Vin {
		if in.Prevout.ScriptpubkeyAddress == wallet.Address {
			sent += in.Prevout.Value
		}
		inputs = append(inputs, domain.TransactionInput{
			Address:  in.Prevout.ScriptpubkeyAddress,
			Value:    btcutil.Amount(in.Prevout.Value).ToBTC(),
			PrevTxid: in.Txid,
			PrevVout: in.Vout,
		})
	}

	outputs := make([]domain.TransactionOutput, 0, len(record.Vout))
	txType := domain.TxTypeSent
	for _, out := range record.Vout {
		if out.ScriptpubkeyAddress == wallet.Address {
			received += out.Value
			txType = domain.TxTypeReceived
		}
		outputs = append(outputs, domain.TransactionOutput{
			Address:      out.ScriptpubkeyAddress,
			Value:        btcutil.Amount(out.Value).ToBTC(),
			ScriptPubKey: out.Scriptpubkey,
		})
	}

	delta := received - sent
	if delta < 0 {
		delta = -delta
	}

	status := domain.TxStatusPending
	confirmations := 0
	var blockHeight int64
	if record.Status.Confirmed {
		status = domain.TxStatusConfirmed
		blockHeight = record.Status.BlockHeight
		if blockHeight > 0 && tip >= blockHeight {
			confirmations = int(tip-blockHeight) + 1
		} else {
			// confirmed but no usable depth, at least one block buried it
			confirmations = 1
		}
	}

	timestamp := time.Now()
	if record.Status.BlockTime > 0 {
		timestamp = time.Unix(record.Status.BlockTime, 0)
	}

	return domain.Transaction{
		ID:            fmt.Sprintf("%s:%s", wallet.ID, record.Txid),
		TxID:          record.Txid,
		WalletID:      wallet.ID,
		Type:          txType,
		Amount:        btcutil.Amount(delta).ToBTC(),
		Fee:           btcutil.Amount(record.Fee).ToBTC(),
		Confirmations: confirmations,
		Status:        status,
		Timestamp:     timestamp,
		BlockHeight:   blockHeight,
		Inputs:        inputs,
		Outputs:       outputs,
	}
}
