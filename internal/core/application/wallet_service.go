package application

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/satswatch/walletd/internal/core/domain"
	"github.com/satswatch/walletd/pkg/explorer"
	"github.com/satswatch/walletd/pkg/streamer"
)

// OperationResult is the outcome of a user-triggered wallet operation.
// Validation and lookup failures are reported here instead of as plain
// errors so that a caller always gets a renderable message.
type OperationResult struct {
	Success bool
	Message string
}

// WalletService orchestrates the synchronization between the explorer, the
// streaming subscriber and the wallet store. It is the only component
// allowed to call both the explorer and the store mutators.
type WalletService interface {
	CreateWallet(name, address string) (*domain.Wallet, OperationResult)
	EditWallet(id string, update domain.WalletUpdate) OperationResult
	DeleteWallet(id string) OperationResult
	SetActiveWallet(id string) OperationResult

	FetchWalletBalance(walletID string)
	FetchWalletTransactions(walletID string)
	RefreshWallets()
	FetchMempoolTransactions()
	GetRecommendedFees() *explorer.RecommendedFees

	ResetStream()
	Status() ServiceStatus

	Start()
	Stop()
}

// ServiceStatus is an aggregate snapshot of the service for diagnostics.
type ServiceStatus struct {
	StreamStatus streamer.Status
	WalletCount  int
	TotalBalance float64
	LastUpdated  *time.Time
}

// Opts groups the tunables of the wallet service. Zero values fall back to
// defaults.
type Opts struct {
	// RefreshInterval is the period of the automatic refresh loop.
	RefreshInterval time.Duration
	// TxsPerPage is the max number of transactions fetched per address.
	TxsPerPage int
	// MempoolViewLimit caps the number of mempool records kept in the store.
	MempoolViewLimit int
}

const (
	defaultRefreshInterval  = 30 * time.Second
	defaultTxsPerPage       = 50
	defaultMempoolViewLimit = 100
)

func (o *Opts) withDefaults() Opts {
	opts := *o
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.TxsPerPage <= 0 {
		opts.TxsPerPage = defaultTxsPerPage
	}
	if opts.MempoolViewLimit <= 0 {
		opts.MempoolViewLimit = defaultMempoolViewLimit
	}
	return opts
}

type walletService struct {
	store       domain.Store
	explorerSvc explorer.Service
	streamerSvc streamer.Service
	opts        Opts

	mtx         sync.Mutex
	refreshStop chan struct{}
}

// NewWalletService returns a WalletService backed by the given store,
// explorer and streamer.
func NewWalletService(
	store domain.Store,
	explorerSvc explorer.Service,
	streamerSvc streamer.Service,
	opts Opts,
) WalletService {
	return &walletService{
		store:       store,
		explorerSvc: explorerSvc,
		streamerSvc: streamerSvc,
		opts:        opts.withDefaults(),
	}
}

// Start brings the service up: if any wallets were restored from disk it
// opens the stream bound to the active wallet, kicks a first refresh and
// starts the automatic refresh loop.
func (s *walletService) Start() {
	if active := s.store.ActiveWallet(); active != nil {
		s.connectStream(active.Address)
	}
	if len(s.store.Wallets()) > 0 {
		go s.RefreshWallets()
		go s.FetchMempoolTransactions()
		s.startRefreshLoop()
	}
}

// Stop tears down the refresh loop and the stream. The store is left open,
// its lifecycle belongs to the caller.
func (s *walletService) Stop() {
	s.stopRefreshLoop()
	s.streamerSvc.Disconnect()
}

func (s *walletService) Status() ServiceStatus {
	state := s.store.State()
	return ServiceStatus{
		StreamStatus: s.streamerSvc.Status(),
		WalletCount:  len(state.Wallets),
		TotalBalance: s.store.GetTotalBalance(),
		LastUpdated:  state.LastUpdated,
	}
}

// ResetStream forces a fresh streaming connection, the manual retry for
// when the subscriber gave up reconnecting.
func (s *walletService) ResetStream() {
	s.streamerSvc.Reset(s.onStreamMessage, s.onStreamError)
}

// startRefreshLoop spins the periodic refresh. The loop stays alive only
// while the wallet collection is non-empty.
func (s *walletService) startRefreshLoop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.refreshStop != nil {
		return
	}

	stop := make(chan struct{})
	s.refreshStop = stop

	go func() {
		ticker := time.NewTicker(s.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.RefreshWallets()
				s.FetchMempoolTransactions()
			}
		}
	}()
}

func (s *walletService) stopRefreshLoop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.refreshStop == nil {
		return
	}
	close(s.refreshStop)
	s.refreshStop = nil
}

func (s *walletService) connectStream(address string) {
	s.streamerSvc.Connect(s.onStreamMessage, s.onStreamError)
	s.streamerSvc.SubscribeToAddress(address)
}

// onStreamMessage ingests live mempool events. Records touching the active
// wallet's address additionally trigger a best-effort refetch of that
// wallet.
func (s *walletService) onStreamMessage(event streamer.Event) {
	if event.Type != "transaction" || event.Tx == nil {
		return
	}

	s.store.AddMempoolTransaction(*event.Tx)

	active := s.store.ActiveWallet()
	if active == nil || !txTouchesAddress(event.Tx, active.Address) {
		return
	}

	walletID := active.ID
	go func() {
		s.FetchWalletBalance(walletID)
		s.FetchWalletTransactions(walletID)
	}()
}

// onStreamError keeps streaming failures out of the user-visible error
// state: the subscriber's own backoff handles recovery, and polling keeps
// the data flowing meanwhile.
func (s *walletService) onStreamError(err error) {
	log.WithError(err).Debug("stream subscriber error")
}

func txTouchesAddress(tx *explorer.TxRecord, address string) bool {
	for _, in := range tx.Vin {
		if in.Prevout.ScriptpubkeyAddress == address {
			return true
		}
	}
	for _, out := range tx.Vout {
		if out.ScriptpubkeyAddress == address {
			return true
		}
	}
	return false
}
