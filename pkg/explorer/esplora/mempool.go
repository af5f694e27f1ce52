package esplora

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/satswatch/walletd/pkg/explorer"
)

func (e *esplora) GetMempoolTransactions() ([]explorer.TxRecord, error) {
	url := fmt.Sprintf("%s/mempool", e.apiURL)
	resp, err := e.get(url)
	if err != nil {
		log.WithError(err).Debug("explorer: falling back to demo mempool dataset")
		return DemoMempoolTransactions(), nil
	}

	txs, err := parseTransactions(resp)
	if err != nil {
		log.WithError(err).Debug("explorer: failed to parse mempool, falling back to demo dataset")
		return DemoMempoolTransactions(), nil
	}

	return txs, nil
}

func (e *esplora) GetRecommendedFees() (*explorer.RecommendedFees, error) {
	url := fmt.Sprintf("%s/v1/fees/recommended", e.apiURL)
	resp, err := e.get(url)
	if err != nil {
		log.WithError(err).Debug("explorer: falling back to demo fee estimations")
		return DemoRecommendedFees(), nil
	}

	fees := &explorer.RecommendedFees{}
	if err := json.Unmarshal([]byte(resp), fees); err != nil {
		log.WithError(err).Debug("explorer: failed to parse fee estimations, falling back to demo values")
		return DemoRecommendedFees(), nil
	}

	return fees, nil
}
