package esplora

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/satswatch/walletd/pkg/explorer"
)

func (e *esplora) GetAddressInfo(address string) (*explorer.AddressInfo, error) {
	url := fmt.Sprintf("%s/address/%s", e.apiURL, address)
	resp, err := e.get(url)
	if err != nil {
		log.WithError(err).Debugf("explorer: failed to fetch info for address %s", address)
		return &explorer.AddressInfo{}, err
	}

	info := &explorer.AddressInfo{}
	if err := json.Unmarshal([]byte(resp), info); err != nil {
		log.WithError(err).Debug("explorer: failed to parse address info")
		return &explorer.AddressInfo{}, err
	}

	return info, nil
}

func (e *esplora) GetAddressTransactions(address string, limit int) ([]explorer.TxRecord, error) {
	url := fmt.Sprintf("%s/address/%s/txs?limit=%d", e.apiURL, address, limit)
	resp, err := e.get(url)
	if err != nil {
		log.WithError(err).Debugf("explorer: failed to fetch txs for address %s", address)
		return []explorer.TxRecord{}, err
	}

	txs, err := parseTransactions(resp)
	if err != nil {
		log.WithError(err).Debug("explorer: failed to parse address txs")
		return []explorer.TxRecord{}, err
	}

	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func parseTransactions(resp string) ([]explorer.TxRecord, error) {
	txs := make([]explorer.TxRecord, 0)
	if err := json.Unmarshal([]byte(resp), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}
