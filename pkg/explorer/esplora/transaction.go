package esplora

import (
	"encoding/json"
	"fmt"

	"github.com/satswatch/walletd/pkg/explorer"
)

func (e *esplora) GetTransaction(txid string) (*explorer.TxRecord, error) {
	url := fmt.Sprintf("%s/tx/%s", e.apiURL, txid)
	resp, err := e.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction details: %w", err)
	}

	tx := &explorer.TxRecord{}
	if err := json.Unmarshal([]byte(resp), tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction details: %w", err)
	}

	return tx, nil
}
