package keygen_test

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/satswatch/walletd/pkg/keygen"
)

func TestNew(t *testing.T) {
	stages := make([]keygen.Stage, 0)
	pair, err := keygen.New(func(stage keygen.Stage, percent int) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)
	require.NotNil(t, pair)

	require.Len(t, pair.PrivateKey, 64)
	require.Len(t, pair.PublicKey, 66)
	require.True(t, strings.HasPrefix(pair.Address, "bc1q"))

	wif, err := btcutil.DecodeWIF(pair.WIF)
	require.NoError(t, err)
	require.True(t, wif.IsForNet(&chaincfg.MainNetParams))

	_, err = btcutil.DecodeAddress(pair.Address, &chaincfg.MainNetParams)
	require.NoError(t, err)

	require.Equal(t, keygen.StageComplete, stages[len(stages)-1])
}

func TestNewWithoutProgressCallback(t *testing.T) {
	pair, err := keygen.New(nil)
	require.NoError(t, err)
	require.NotNil(t, pair)
}

func TestNewProducesUniqueKeys(t *testing.T) {
	a, err := keygen.New(nil)
	require.NoError(t, err)
	b, err := keygen.New(nil)
	require.NoError(t, err)

	require.NotEqual(t, a.PrivateKey, b.PrivateKey)
	require.NotEqual(t, a.Address, b.Address)
}
