package domain_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satswatch/walletd/internal/core/domain"
)

func TestCoerceBalance(t *testing.T) {
	require.Equal(t, 1.5, domain.CoerceBalance(1.5))
	require.Equal(t, float64(0), domain.CoerceBalance(0))
	require.Equal(t, float64(0), domain.CoerceBalance(-1))
	require.Equal(t, float64(0), domain.CoerceBalance(math.NaN()))
	require.Equal(t, float64(0), domain.CoerceBalance(math.Inf(1)))
	require.Equal(t, float64(0), domain.CoerceBalance(math.Inf(-1)))
}

func TestValidateWalletName(t *testing.T) {
	require.NoError(t, domain.ValidateWalletName("Savings"))
	require.EqualError(
		t, domain.ValidateWalletName(""),
		domain.ErrMissingNameOrAddress.Error(),
	)
	require.EqualError(
		t, domain.ValidateWalletName(strings.Repeat("a", 51)),
		domain.ErrNameTooLong.Error(),
	)
	require.NoError(t, domain.ValidateWalletName(strings.Repeat("a", 50)))
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		err     error
	}{
		{"legacy p2pkh", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", nil},
		{"p2sh", "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", nil},
		{"bech32 p2wpkh", "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", nil},
		{"empty", "", domain.ErrMissingNameOrAddress},
		{"too short", "1A1zP1eP5QGefi2", domain.ErrInvalidAddress},
		{"garbage", "not-a-bitcoin-address-at-all", domain.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAddress(tt.address)
			if tt.err == nil {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tt.err.Error())
			}
		})
	}
}
