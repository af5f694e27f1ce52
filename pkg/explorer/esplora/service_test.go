package esplora_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satswatch/walletd/pkg/explorer"
	"github.com/satswatch/walletd/pkg/explorer/esplora"
)

const testAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

func newTestExplorer(t *testing.T, handler http.Handler) explorer.Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := esplora.NewService(srv.URL, 2000, 100)
	require.NoError(t, err)
	return svc
}

func newFailingExplorer(t *testing.T) explorer.Service {
	t.Helper()

	return newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "explorer is down", http.StatusInternalServerError)
		},
	))
}

func TestGetAddressInfo(t *testing.T) {
	svc := newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/address/"+testAddress, r.URL.Path)
			w.Write([]byte(`{
				"funded_txo_count": 3,
				"funded_txo_sum": 150000000,
				"spent_txo_count": 1,
				"spent_txo_sum": 50000000,
				"tx_count": 4
			}`))
		},
	))

	info, err := svc.GetAddressInfo(testAddress)
	require.NoError(t, err)
	require.Equal(t, int64(150000000), info.FundedTxoSum)
	require.Equal(t, int64(50000000), info.SpentTxoSum)
	require.Equal(t, int64(4), info.TxCount)
}

func TestGetAddressInfoDefaultsToZeroOnFailure(t *testing.T) {
	svc := newFailingExplorer(t)

	info, err := svc.GetAddressInfo(testAddress)
	require.Error(t, err)
	require.NotNil(t, info)
	require.Zero(t, info.FundedTxoSum)
	require.Zero(t, info.SpentTxoSum)
	require.Zero(t, info.FundedTxoCount)
	require.Zero(t, info.SpentTxoCount)
	require.Zero(t, info.TxCount)
}

func TestGetAddressTransactions(t *testing.T) {
	svc := newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/address/"+testAddress+"/txs", r.URL.Path)
			require.Equal(t, "25", r.URL.Query().Get("limit"))
			w.Write([]byte(`[{
				"txid": "aa11",
				"fee": 1000,
				"status": {"confirmed": true, "block_height": 820001, "block_time": 1700000000},
				"vin": [],
				"vout": [{"scriptpubkey_address": "` + testAddress + `", "value": 25000}]
			}]`))
		},
	))

	txs, err := svc.GetAddressTransactions(testAddress, 25)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "aa11", txs[0].Txid)
	require.True(t, txs[0].Status.Confirmed)
	require.Equal(t, int64(820001), txs[0].Status.BlockHeight)
	require.Equal(t, int64(25000), txs[0].Vout[0].Value)
}

func TestGetAddressTransactionsDefaultsToEmptyOnFailure(t *testing.T) {
	svc := newFailingExplorer(t)

	txs, err := svc.GetAddressTransactions(testAddress, 50)
	require.Error(t, err)
	require.NotNil(t, txs)
	require.Empty(t, txs)
}

func TestGetMempoolTransactionsFallsBackToDemoDataset(t *testing.T) {
	svc := newFailingExplorer(t)

	txs, err := svc.GetMempoolTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		require.False(t, tx.Status.Confirmed)
		require.NotEmpty(t, tx.Txid)
	}
}

func TestGetRecommendedFees(t *testing.T) {
	svc := newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/fees/recommended", r.URL.Path)
			w.Write([]byte(`{"fastestFee": 42, "halfHourFee": 21, "hourFee": 12, "economyFee": 3, "minimumFee": 1}`))
		},
	))

	fees, err := svc.GetRecommendedFees()
	require.NoError(t, err)
	require.Equal(t, int64(42), fees.FastestFee)
	require.Equal(t, int64(1), fees.MinimumFee)
}

func TestGetRecommendedFeesFallsBackToDemoValues(t *testing.T) {
	svc := newFailingExplorer(t)

	fees, err := svc.GetRecommendedFees()
	require.NoError(t, err)
	require.Equal(t, esplora.DemoRecommendedFees(), fees)
}

func TestGetBlockHeight(t *testing.T) {
	svc := newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/blocks/tip/height", r.URL.Path)
			w.Write([]byte("823456\n"))
		},
	))

	height, err := svc.GetBlockHeight()
	require.NoError(t, err)
	require.Equal(t, 823456, height)
}

func TestGetBlockHeightFallsBackToPlaceholder(t *testing.T) {
	svc := newFailingExplorer(t)

	height, err := svc.GetBlockHeight()
	require.NoError(t, err)
	require.Equal(t, esplora.DemoBlockHeight, height)
}

func TestGetTransactionFailsWithoutSafeDefault(t *testing.T) {
	svc := newFailingExplorer(t)

	tx, err := svc.GetTransaction("aa11")
	require.Error(t, err)
	require.Nil(t, tx)
}

func TestGetBlock(t *testing.T) {
	svc := newTestExplorer(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/block/0000aa", r.URL.Path)
			w.Write([]byte(`{"id": "0000aa", "height": 820000, "tx_count": 2500}`))
		},
	))

	block, err := svc.GetBlock("0000aa")
	require.NoError(t, err)
	require.Equal(t, int64(820000), block.Height)
	require.Equal(t, int64(2500), block.TxCount)
}

func TestGetBlockFailsWithoutSafeDefault(t *testing.T) {
	svc := newFailingExplorer(t)

	block, err := svc.GetBlock("0000aa")
	require.Error(t, err)
	require.Nil(t, block)
}
