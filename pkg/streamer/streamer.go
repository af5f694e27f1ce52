package streamer

import (
	"time"

	"github.com/satswatch/walletd/pkg/explorer"
)

// Status describes the current state of the streaming connection.
type Status string

const (
	Disconnected Status = "disconnected"
	Connecting   Status = "connecting"
	Connected    Status = "connected"
	// Errored means the subscriber gave up reconnecting; only Reset brings
	// it back.
	Errored Status = "error"
)

// Event is a structured message pushed by the explorer stream. Messages that
// don't carry a transaction payload have a nil Tx.
type Event struct {
	Type string             `json:"type"`
	Tx   *explorer.TxRecord `json:"tx"`
}

// MessageHandler is invoked for every well-formed message received on the
// stream.
type MessageHandler func(Event)

// ErrorHandler is invoked only for failures that are not part of the
// ordinary reconnection bookkeeping.
type ErrorHandler func(error)

// Service maintains at most one live streaming connection towards the
// explorer push endpoint and isolates the rest of the system from
// connection churn.
type Service interface {
	// Connect opens the streaming connection. It is a no-op if a connection
	// is already open or being opened, or if the reconnection attempts have
	// been exhausted.
	Connect(onMessage MessageHandler, onError ErrorHandler)
	// SubscribeToAddress sends the subscription-intent message for the given
	// address. The subscription is coarse-grained: the server streams the
	// global feed and per-address filtering happens client side.
	SubscribeToAddress(address string)
	// Disconnect closes the connection with a normal closure code, cancels
	// any pending reconnection and resets the attempt counter.
	Disconnect()
	// Reset forces a disconnect followed by a fresh connection after a short
	// fixed delay. It is the manual user-triggered retry for when the
	// subscriber gave up.
	Reset(onMessage MessageHandler, onError ErrorHandler)
	// Status returns the current connection status.
	Status() Status
}

// Opts defines the parameters needed for creating a streamer service with
// the NewService method. Zero values fall back to defaults.
type Opts struct {
	// URL of the websocket endpoint.
	URL string
	// MaxReconnectAttempts is the cap of reconnections after abnormal
	// closures before giving up.
	MaxReconnectAttempts int
	// BaseReconnectDelay is the backoff unit, doubled at every attempt.
	BaseReconnectDelay time.Duration
	// MaxReconnectDelay caps the backoff.
	MaxReconnectDelay time.Duration
	// ConnectTimeout is how long a connection attempt may take before being
	// forcibly closed.
	ConnectTimeout time.Duration
	// ResetDelay is the pause between a forced disconnect and the fresh
	// connection on Reset.
	ResetDelay time.Duration
}

const (
	defaultMaxReconnectAttempts = 3
	defaultBaseReconnectDelay   = time.Second
	defaultMaxReconnectDelay    = 30 * time.Second
	defaultConnectTimeout       = 10 * time.Second
	defaultResetDelay           = time.Second
)

func (o *Opts) withDefaults() Opts {
	opts := *o
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = defaultMaxReconnectAttempts
	}
	if opts.BaseReconnectDelay <= 0 {
		opts.BaseReconnectDelay = defaultBaseReconnectDelay
	}
	if opts.MaxReconnectDelay <= 0 {
		opts.MaxReconnectDelay = defaultMaxReconnectDelay
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = defaultResetDelay
	}
	return opts
}
