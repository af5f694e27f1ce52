package walletstore

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/satswatch/walletd/internal/core/domain"
)

// walletStore is the badger-backed implementation of domain.Store. The
// in-memory state is authoritative and guarded by a single RWMutex so that
// every mutation is atomic with respect to readers; the durable subset is
// written back to badger after every mutation that touches it.
type walletStore struct {
	db *badgerhold.Store

	mtx            sync.RWMutex
	wallets        []domain.Wallet
	activeWalletID string
	transactions   []domain.Transaction
	mempool        []domain.MempoolTransaction
	isLoading      bool
	errMsg         string
	lastUpdated    *time.Time
}

func (s *walletStore) load() error {
	state := persistedState{}
	if err := s.db.Get(storageKey, &state); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}

	for i := range state.Wallets {
		state.Wallets[i].Balance = domain.CoerceBalance(state.Wallets[i].Balance)
	}

	s.wallets = state.Wallets
	s.transactions = state.Transactions
	s.activeWalletID = state.ActiveWalletID
	if s.indexOfWallet(s.activeWalletID) < 0 {
		s.activeWalletID = ""
		if len(s.wallets) > 0 {
			s.activeWalletID = s.wallets[0].ID
		}
	}

	return nil
}

// persistLocked writes the durable subset back to badger. Callers must hold
// s.mtx.
func (s *walletStore) persistLocked() {
	state := &persistedState{
		Wallets:        s.wallets,
		ActiveWalletID: s.activeWalletID,
		Transactions:   s.transactions,
	}
	if err := s.db.Upsert(storageKey, state); err != nil {
		log.WithError(err).Error("wallet store: failed to persist state")
	}
}

func (s *walletStore) SetWallets(wallets []domain.Wallet) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.wallets = make([]domain.Wallet, len(wallets))
	for i, wallet := range wallets {
		wallet.Balance = domain.CoerceBalance(wallet.Balance)
		s.wallets[i] = wallet
	}

	if s.indexOfWallet(s.activeWalletID) < 0 {
		s.activeWalletID = ""
		if len(s.wallets) > 0 {
			s.activeWalletID = s.wallets[0].ID
		}
	}

	s.persistLocked()
}

func (s *walletStore) AddWallet(wallet domain.Wallet) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	wallet.Balance = domain.CoerceBalance(wallet.Balance)
	s.wallets = append(s.wallets, wallet)

	if s.activeWalletID == "" {
		s.activeWalletID = wallet.ID
	}

	s.persistLocked()
}

func (s *walletStore) UpdateWallet(id string, update domain.WalletUpdate) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := s.indexOfWallet(id)
	if index < 0 {
		return
	}

	wallet := &s.wallets[index]
	if update.Name != nil {
		wallet.Name = *update.Name
	}
	if update.Balance != nil {
		wallet.Balance = domain.CoerceBalance(*update.Balance)
	}
	if update.UpdatedAt != nil {
		wallet.UpdatedAt = *update.UpdatedAt
	}

	s.persistLocked()
}

func (s *walletStore) RemoveWallet(id string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := s.indexOfWallet(id)
	if index < 0 {
		return
	}

	s.wallets = append(s.wallets[:index], s.wallets[index+1:]...)

	if s.activeWalletID == id {
		s.activeWalletID = ""
		if len(s.wallets) > 0 {
			s.activeWalletID = s.wallets[0].ID
		}
	}

	s.persistLocked()
}

func (s *walletStore) SetActiveWallet(wallet *domain.Wallet) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if wallet == nil {
		s.activeWalletID = ""
		s.persistLocked()
		return
	}

	if s.indexOfWallet(wallet.ID) < 0 {
		log.Warnf("wallet store: refusing to activate unknown wallet %s", wallet.ID)
		return
	}

	s.activeWalletID = wallet.ID
	s.persistLocked()
}

func (s *walletStore) SetTransactions(txs []domain.Transaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.transactions = append([]domain.Transaction{}, txs...)
	s.persistLocked()
}

func (s *walletStore) ReplaceWalletTransactions(
	walletID string, txs []domain.Transaction,
) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	kept := make([]domain.Transaction, 0, len(s.transactions)+len(txs))
	kept = append(kept, txs...)
	for _, tx := range s.transactions {
		if tx.WalletID != walletID {
			kept = append(kept, tx)
		}
	}
	s.transactions = kept

	s.persistLocked()
}

func (s *walletStore) AddTransaction(tx domain.Transaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			s.persistLocked()
			return
		}
	}

	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	s.persistLocked()
}

func (s *walletStore) UpdateTransaction(id string, update domain.TransactionUpdate) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}

		tx := &s.transactions[i]
		if update.Confirmations != nil {
			tx.Confirmations = *update.Confirmations
		}
		if update.Status != nil {
			tx.Status = *update.Status
		}
		if update.BlockHeight != nil {
			tx.BlockHeight = *update.BlockHeight
		}

		s.persistLocked()
		return
	}
}

func (s *walletStore) SetMempoolTransactions(txs []domain.MempoolTransaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.mempool = append([]domain.MempoolTransaction{}, txs...)
}

func (s *walletStore) AddMempoolTransaction(tx domain.MempoolTransaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i := range s.mempool {
		if s.mempool[i].Txid == tx.Txid {
			s.mempool[i] = tx
			return
		}
	}

	s.mempool = append([]domain.MempoolTransaction{tx}, s.mempool...)
}

func (s *walletStore) SetLoading(loading bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.isLoading = loading
}

func (s *walletStore) SetError(msg string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.errMsg = msg
}

func (s *walletStore) ClearError() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.errMsg = ""
}

func (s *walletStore) SetLastUpdated(at time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.lastUpdated = &at
}

func (s *walletStore) State() domain.WalletState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return domain.WalletState{
		Wallets:             s.walletsLocked(),
		ActiveWallet:        s.activeWalletLocked(),
		Transactions:        append([]domain.Transaction{}, s.transactions...),
		MempoolTransactions: append([]domain.MempoolTransaction{}, s.mempool...),
		IsLoading:           s.isLoading,
		Error:               s.errMsg,
		LastUpdated:         s.lastUpdated,
	}
}

func (s *walletStore) Wallets() []domain.Wallet {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.walletsLocked()
}

func (s *walletStore) ActiveWallet() *domain.Wallet {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.activeWalletLocked()
}

func (s *walletStore) GetWalletByID(id string) (*domain.Wallet, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	index := s.indexOfWallet(id)
	if index < 0 {
		return nil, false
	}

	wallet := s.wallets[index]
	wallet.IsActive = wallet.ID == s.activeWalletID
	return &wallet, true
}

func (s *walletStore) GetTransactionsByWallet(walletID string) []domain.Transaction {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	txs := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.WalletID == walletID {
			txs = append(txs, tx)
		}
	}
	return txs
}

func (s *walletStore) GetTotalBalance() float64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	total := float64(0)
	for _, wallet := range s.wallets {
		total += domain.CoerceBalance(wallet.Balance)
	}
	return total
}

func (s *walletStore) GetPendingTransactions() []domain.Transaction {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	txs := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.Status == domain.TxStatusPending {
			txs = append(txs, tx)
		}
	}
	return txs
}

func (s *walletStore) Close() {
	s.db.Close()
}

// indexOfWallet returns the position of the wallet with the given id, or -1.
// Callers must hold s.mtx.
func (s *walletStore) indexOfWallet(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.wallets {
		if s.wallets[i].ID == id {
			return i
		}
	}
	return -1
}

// walletsLocked returns copies of the wallets with the derived IsActive
// flag set. Callers must hold s.mtx.
func (s *walletStore) walletsLocked() []domain.Wallet {
	wallets := make([]domain.Wallet, len(s.wallets))
	for i, wallet := range s.wallets {
		wallet.IsActive = wallet.ID == s.activeWalletID
		wallets[i] = wallet
	}
	return wallets
}

// activeWalletLocked resolves the active-wallet index to a copy of the
// wallet. Callers must hold s.mtx.
func (s *walletStore) activeWalletLocked() *domain.Wallet {
	index := s.indexOfWallet(s.activeWalletID)
	if index < 0 {
		return nil
	}
	wallet := s.wallets[index]
	wallet.IsActive = true
	return &wallet
}
