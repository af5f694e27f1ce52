package walletstore_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/satswatch/walletd/internal/core/domain"
	walletstore "github.com/satswatch/walletd/internal/infrastructure/storage/badger"
)

func newTestStore(t *testing.T) domain.Store {
	t.Helper()

	store, err := walletstore.NewWalletStore("", nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return store
}

func newTestWallet(id, name string) domain.Wallet {
	now := time.Now()
	return domain.Wallet{
		ID:        id,
		Name:      name,
		Address:   "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		Balance:   1.5,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFirstWalletBecomesActive(t *testing.T) {
	store := newTestStore(t)

	require.Nil(t, store.ActiveWallet())

	store.AddWallet(newTestWallet("w1", "Savings"))
	store.AddWallet(newTestWallet("w2", "Spending"))

	active := store.ActiveWallet()
	require.NotNil(t, active)
	require.Equal(t, "w1", active.ID)
	require.True(t, active.IsActive)

	wallets := store.Wallets()
	require.True(t, wallets[0].IsActive)
	require.False(t, wallets[1].IsActive)
}

func TestRemovingActiveWalletPromotesRemaining(t *testing.T) {
	store := newTestStore(t)

	store.AddWallet(newTestWallet("w1", "Savings"))
	store.AddWallet(newTestWallet("w2", "Spending"))
	store.AddWallet(newTestWallet("w3", "Cold"))

	store.RemoveWallet("w1")

	active := store.ActiveWallet()
	require.NotNil(t, active)
	require.Equal(t, "w2", active.ID)

	store.RemoveWallet("w2")
	store.RemoveWallet("w3")
	require.Nil(t, store.ActiveWallet())
	require.Len(t, store.Wallets(), 0)
}

func TestSetActiveWalletIgnoresUnknownWallet(t *testing.T) {
	store := newTestStore(t)

	store.AddWallet(newTestWallet("w1", "Savings"))

	stranger := newTestWallet("w9", "Stranger")
	store.SetActiveWallet(&stranger)

	active := store.ActiveWallet()
	require.NotNil(t, active)
	require.Equal(t, "w1", active.ID)
}

func TestSetWalletsResetsDanglingActiveWallet(t *testing.T) {
	store := newTestStore(t)

	store.AddWallet(newTestWallet("w1", "Savings"))
	w2 := newTestWallet("w2", "Spending")
	store.AddWallet(w2)
	store.SetActiveWallet(&w2)

	store.SetWallets([]domain.Wallet{newTestWallet("w3", "Cold")})

	active := store.ActiveWallet()
	require.NotNil(t, active)
	require.Equal(t, "w3", active.ID)
}

func TestUpdateWallet(t *testing.T) {
	store := newTestStore(t)

	store.AddWallet(newTestWallet("w1", "Savings"))

	name := "Renamed"
	balance := 2.25
	store.UpdateWallet("w1", domain.WalletUpdate{
		Name:    &name,
		Balance: &balance,
	})

	wallet, ok := store.GetWalletByID("w1")
	require.True(t, ok)
	require.Equal(t, "Renamed", wallet.Name)
	require.Equal(t, 2.25, wallet.Balance)
}

func TestBalanceCoercion(t *testing.T) {
	store := newTestStore(t)

	nan := math.NaN()
	inf := math.Inf(1)
	negative := -3.5

	wallet := newTestWallet("w1", "Savings")
	wallet.Balance = nan
	store.AddWallet(wallet)
	store.AddWallet(newTestWallet("w2", "Spending"))

	store.UpdateWallet("w2", domain.WalletUpdate{Balance: &inf})

	got, ok := store.GetWalletByID("w1")
	require.True(t, ok)
	require.Equal(t, float64(0), got.Balance)

	got, ok = store.GetWalletByID("w2")
	require.True(t, ok)
	require.Equal(t, float64(0), got.Balance)

	store.UpdateWallet("w2", domain.WalletUpdate{Balance: &negative})
	require.Equal(t, float64(0), store.GetTotalBalance())
}

func TestGetTotalBalance(t *testing.T) {
	store := newTestStore(t)

	w1 := newTestWallet("w1", "Savings")
	w1.Balance = 1.25
	w2 := newTestWallet("w2", "Spending")
	w2.Balance = 0.75
	store.AddWallet(w1)
	store.AddWallet(w2)

	require.Equal(t, float64(2), store.GetTotalBalance())
}

func TestAddTransactionUpsertsByID(t *testing.T) {
	store := newTestStore(t)

	store.AddTransaction(domain.Transaction{
		ID:       "t1",
		TxID:     "aaaa",
		WalletID: "w1",
		Status:   domain.TxStatusPending,
	})
	store.AddTransaction(domain.Transaction{
		ID:       "t2",
		TxID:     "bbbb",
		WalletID: "w1",
		Status:   domain.TxStatusConfirmed,
	})
	store.AddTransaction(domain.Transaction{
		ID:       "t1",
		TxID:     "aaaa",
		WalletID: "w1",
		Status:   domain.TxStatusConfirmed,
	})

	txs := store.GetTransactionsByWallet("w1")
	require.Len(t, txs, 2)
	// newest insert stays first, upsert does not reorder
	require.Equal(t, "t2", txs[0].ID)
	require.Equal(t, domain.TxStatusConfirmed, txs[1].Status)
}

func TestReplaceWalletTransactions(t *testing.T) {
	store := newTestStore(t)

	store.AddTransaction(domain.Transaction{ID: "t1", WalletID: "w1"})
	store.AddTransaction(domain.Transaction{ID: "t2", WalletID: "w2"})

	store.ReplaceWalletTransactions("w1", []domain.Transaction{
		{ID: "t3", WalletID: "w1"},
		{ID: "t4", WalletID: "w1"},
	})

	require.Len(t, store.GetTransactionsByWallet("w1"), 2)
	require.Len(t, store.GetTransactionsByWallet("w2"), 1)

	store.ReplaceWalletTransactions("w1", nil)
	require.Len(t, store.GetTransactionsByWallet("w1"), 0)
	require.Len(t, store.GetTransactionsByWallet("w2"), 1)
}

func TestReplaceWalletTransactionsConcurrently(t *testing.T) {
	store := newTestStore(t)

	walletIDs := []string{"w1", "w2", "w3"}
	wg := &sync.WaitGroup{}
	for _, walletID := range walletIDs {
		wg.Add(1)
		go func(walletID string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				store.ReplaceWalletTransactions(walletID, []domain.Transaction{
					{ID: walletID + "-tx", WalletID: walletID},
				})
			}
		}(walletID)
	}
	wg.Wait()

	// no wallet's replacement may erase a sibling's transactions
	for _, walletID := range walletIDs {
		require.Len(t, store.GetTransactionsByWallet(walletID), 1)
	}
}

func TestUpdateTransaction(t *testing.T) {
	store := newTestStore(t)

	store.AddTransaction(domain.Transaction{
		ID:            "t1",
		WalletID:      "w1",
		Status:        domain.TxStatusPending,
		Confirmations: 0,
	})

	confirmations := 3
	status := domain.TxStatusConfirmed
	blockHeight := int64(820001)
	store.UpdateTransaction("t1", domain.TransactionUpdate{
		Confirmations: &confirmations,
		Status:        &status,
		BlockHeight:   &blockHeight,
	})

	txs := store.GetTransactionsByWallet("w1")
	require.Len(t, txs, 1)
	require.Equal(t, 3, txs[0].Confirmations)
	require.Equal(t, domain.TxStatusConfirmed, txs[0].Status)
	require.Equal(t, int64(820001), txs[0].BlockHeight)
}

func TestGetPendingTransactions(t *testing.T) {
	store := newTestStore(t)

	store.AddTransaction(domain.Transaction{ID: "t1", WalletID: "w1", Status: domain.TxStatusPending})
	store.AddTransaction(domain.Transaction{ID: "t2", WalletID: "w1", Status: domain.TxStatusConfirmed})
	store.AddTransaction(domain.Transaction{ID: "t3", WalletID: "w2", Status: domain.TxStatusPending})

	pending := store.GetPendingTransactions()
	require.Len(t, pending, 2)
	for _, tx := range pending {
		require.Equal(t, domain.TxStatusPending, tx.Status)
	}
}

func TestAddMempoolTransactionUpsertsByTxid(t *testing.T) {
	store := newTestStore(t)

	store.AddMempoolTransaction(domain.MempoolTransaction{Txid: "aaaa", Fee: 100})
	store.AddMempoolTransaction(domain.MempoolTransaction{Txid: "bbbb", Fee: 200})
	store.AddMempoolTransaction(domain.MempoolTransaction{Txid: "aaaa", Fee: 150})

	state := store.State()
	require.Len(t, state.MempoolTransactions, 2)
	require.Equal(t, "bbbb", state.MempoolTransactions[0].Txid)
	require.Equal(t, int64(150), state.MempoolTransactions[1].Fee)
}

func TestStateSnapshot(t *testing.T) {
	store := newTestStore(t)

	store.AddWallet(newTestWallet("w1", "Savings"))
	store.SetLoading(true)
	store.SetError("explorer unreachable")
	now := time.Now()
	store.SetLastUpdated(now)

	state := store.State()
	require.Len(t, state.Wallets, 1)
	require.NotNil(t, state.ActiveWallet)
	require.True(t, state.IsLoading)
	require.Equal(t, "explorer unreachable", state.Error)
	require.NotNil(t, state.LastUpdated)
	require.Equal(t, now.Unix(), state.LastUpdated.Unix())

	store.ClearError()
	require.Empty(t, store.State().Error)

	// mutating the snapshot must not affect the store
	state.Wallets[0].Name = "mutated"
	wallet, _ := store.GetWalletByID("w1")
	require.Equal(t, "Savings", wallet.Name)
}
