// Package keygen generates throwaway secp256k1 keypairs for demo purposes.
// The produced keys are real and spendable, but nothing in the daemon ever
// signs with them.
package keygen

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Stage identifies a step of the generation pipeline, reported through the
// optional progress callback.
type Stage string

const (
	StageGenerating Stage = "generating entropy"
	StageDeriving   Stage = "deriving public key"
	StageEncoding   Stage = "encoding address"
	StageComplete   Stage = "complete"
)

// ProgressFunc is notified as the generation advances through its stages.
type ProgressFunc func(stage Stage, percent int)

// KeyPair is the result of a generation run. PrivateKey and PublicKey are
// hex-encoded, the private key additionally in WIF.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
	WIF        string
	Address    string
}

// New generates a fresh keypair and its p2wpkh mainnet address. The progress
// callback may be nil.
func New(onProgress ProgressFunc) (*KeyPair, error) {
	notify := func(stage Stage, percent int) {
		if onProgress != nil {
			onProgress(stage, percent)
		}
	}

	notify(StageGenerating, 10)
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating private key: %w", err)
	}

	notify(StageDeriving, 40)
	pubKey := privKey.PubKey()

	notify(StageEncoding, 70)
	wif, err := btcutil.NewWIF(privKey, &chaincfg.MainNetParams, true)
	if err != nil {
		return nil, fmt.Errorf("encoding wif: %w", err)
	}

	witnessProg := btcutil.Hash160(pubKey.SerializeCompressed())
	address, err := btcutil.NewAddressWitnessPubKeyHash(
		witnessProg, &chaincfg.MainNetParams,
	)
	if err != nil {
		return nil, fmt.Errorf("encoding address: %w", err)
	}

	notify(StageComplete, 100)
	return &KeyPair{
		PrivateKey: hex.EncodeToString(privKey.Serialize()),
		PublicKey:  hex.EncodeToString(pubKey.SerializeCompressed()),
		WIF:        wif.String(),
		Address:    address.EncodeAddress(),
	}, nil
}
