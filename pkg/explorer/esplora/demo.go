package esplora

import "github.com/satswatch/walletd/pkg/explorer"

// DemoMempoolTransactions returns a fixed set of synthetic unconfirmed
// transactions, used when the real explorer is not available so that the
// mempool view always has something to show.
func DemoMempoolTransactions() []explorer.TxRecord {
	return []explorer.TxRecord{
		{
			Txid:   "a1b2c3d4e5f6789012345678901234567890abcdef1234567890abcdef123456",
			Fee:    15000,
			Weight: 400,
			Vin: []explorer.TxInput{
				{
					Txid: "f1e2d3c4b5a6978012345678901234567890abcdef1234567890abcdef123456",
					Vout: 0,
					Prevout: explorer.TxOutput{
						Scriptpubkey:        "76a914abcdef1234567890abcdef1234567890abcdef1288ac",
						ScriptpubkeyAsm:     "OP_DUP OP_HASH160 abcdef1234567890abcdef1234567890abcdef12 OP_EQUALVERIFY OP_CHECKSIG",
						ScriptpubkeyType:    "p2pkh",
						ScriptpubkeyAddress: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
						Value:               100000000,
					},
				},
			},
			Vout: []explorer.TxOutput{
				{
					Scriptpubkey:        "76a9141234567890abcdef1234567890abcdef1234567888ac",
					ScriptpubkeyAsm:     "OP_DUP OP_HASH160 1234567890abcdef1234567890abcdef12345678 OP_EQUALVERIFY OP_CHECKSIG",
					ScriptpubkeyType:    "p2pkh",
					ScriptpubkeyAddress: "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
					Value:               99985000,
				},
			},
		},
		{
			Txid:   "b2c3d4e5f6789012345678901234567890abcdef1234567890abcdef12345678",
			Fee:    25000,
			Weight: 600,
			Vin: []explorer.TxInput{
				{
					Txid: "e1d2c3b4a5978012345678901234567890abcdef1234567890abcdef12345678",
					Vout: 1,
					Prevout: explorer.TxOutput{
						Scriptpubkey:        "76a914fedcba0987654321fedcba0987654321fedcba0988ac",
						ScriptpubkeyAsm:     "OP_DUP OP_HASH160 fedcba0987654321fedcba0987654321fedcba09 OP_EQUALVERIFY OP_CHECKSIG",
						ScriptpubkeyType:    "p2pkh",
						ScriptpubkeyAddress: "1CvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
						Value:               200000000,
					},
				},
			},
			Vout: []explorer.TxOutput{
				{
					Scriptpubkey:        "76a914234567890abcdef1234567890abcdef12345678988ac",
					ScriptpubkeyAsm:     "OP_DUP OP_HASH160 234567890abcdef1234567890abcdef123456789 OP_EQUALVERIFY OP_CHECKSIG",
					ScriptpubkeyType:    "p2pkh",
					ScriptpubkeyAddress: "1DvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
					Value:               199975000,
				},
			},
		},
		{
			Txid:   "c3d4e5f6789012345678901234567890abcdef1234567890abcdef1234567890",
			Fee:    30000,
			Weight: 800,
			Vin: []explorer.TxInput{
				{
					Txid: "d1c2b3a4978012345678901234567890abcdef1234567890abcdef1234567890",
					Vout: 0,
					Prevout: explorer.TxOutput{
						Scriptpubkey:        "76a9140123456789abcdef0123456789abcdef0123456788ac",
						ScriptpubkeyAsm:     "OP_DUP OP_HASH160 0123456789abcdef0123456789abcdef01234567 OP_EQUALVERIFY OP_CHECKSIG",
						ScriptpubkeyType:    "p2pkh",
						ScriptpubkeyAddress: "1EvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
						Value:               500000000,
					},
				},
			},
			Vout: []explorer.TxOutput{
				{
					Scriptpubkey:        "76a91434567890abcdef1234567890abcdef123456789a88ac",
					ScriptpubkeyAsm:     "OP_DUP OP_HASH160 34567890abcdef1234567890abcdef123456789a OP_EQUALVERIFY OP_CHECKSIG",
					ScriptpubkeyType:    "p2pkh",
					ScriptpubkeyAddress: "1FvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
					Value:               499970000,
				},
			},
		},
	}
}

// DemoRecommendedFees returns fixed fee estimations used when the real
// explorer is not available.
func DemoRecommendedFees() *explorer.RecommendedFees {
	return &explorer.RecommendedFees{
		FastestFee:  50,
		HalfHourFee: 25,
		HourFee:     15,
		EconomyFee:  5,
		MinimumFee:  1,
	}
}
