package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/satswatch/walletd/pkg/explorer"
	"github.com/satswatch/walletd/pkg/explorer/esplora"
)

const (
	// ExplorerEndpointKey is the base URL of the block explorer REST API
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// StreamEndpointKey is the URL of the block explorer websocket push endpoint
	StreamEndpointKey = "STREAM_ENDPOINT"
	// DatadirKey is the local data directory to store the wallet state
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// RefreshIntervalKey is the interval in milliseconds between two automatic refreshes of wallet data
	RefreshIntervalKey = "REFRESH_INTERVAL"
	// TxsPerPageKey is the max number of transactions fetched per address
	TxsPerPageKey = "TXS_PER_PAGE"
	// MempoolViewLimitKey is the max number of mempool transactions kept for the mempool view
	MempoolViewLimitKey = "MEMPOOL_VIEW_LIMIT"
	// MaxReconnectAttemptsKey is the cap of websocket reconnection attempts before giving up
	MaxReconnectAttemptsKey = "MAX_RECONNECT_ATTEMPTS"
	// ExplorerRateLimitKey is the number of requests per second towards the explorer
	ExplorerRateLimitKey = "EXPLORER_RATE_LIMIT"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("satswatch", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SATSWATCH")
	vip.AutomaticEnv()

	vip.SetDefault(ExplorerEndpointKey, "https://mempool.space/api")
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(StreamEndpointKey, "wss://mempool.space/api/v1/ws")
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(RefreshIntervalKey, 30000)
	vip.SetDefault(TxsPerPageKey, 50)
	vip.SetDefault(MempoolViewLimitKey, 100)
	vip.SetDefault(MaxReconnectAttemptsKey, 3)
	vip.SetDefault(ExplorerRateLimitKey, 10)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDuration returns the value of the given key as milliseconds
func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Millisecond
}

// GetDatadir returns the base data directory
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory where the wallet state db lives
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetExplorer returns an explorer service configured against the explorer
// endpoint
func GetExplorer() (explorer.Service, error) {
	endpoint := GetString(ExplorerEndpointKey)
	reqTimeout := GetInt(ExplorerRequestTimeoutKey)
	rateLimit := GetInt(ExplorerRateLimitKey)
	return esplora.NewService(endpoint, reqTimeout, rateLimit)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	if _, err := url.Parse(explorerEndpoint); err != nil {
		return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
	}

	streamEndpoint := GetString(StreamEndpointKey)
	if _, err := url.Parse(streamEndpoint); err != nil {
		return fmt.Errorf("stream endpoint is not a valid url: %s", err)
	}

	if GetInt(MaxReconnectAttemptsKey) < 0 {
		return fmt.Errorf("max reconnect attempts must not be a negative number")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
