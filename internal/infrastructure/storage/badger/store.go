package walletstore

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/satswatch/walletd/internal/core/domain"
)

// storageKey is the single record under which the durable subset of the
// wallet state is persisted.
const storageKey = "bitcoin-wallet-storage"

// persistedState is the durable subset of the wallet state. Mempool events
// and the loading/error scalars are transient and always reset on reload.
type persistedState struct {
	Wallets        []domain.Wallet
	ActiveWalletID string
	Transactions   []domain.Transaction
}

// NewWalletStore opens (or creates if not exists) the badger store on disk
// and loads the persisted wallet state into memory. An empty baseDbDir opens
// an in-memory store, useful for tests.
func NewWalletStore(baseDbDir string, logger badger.Logger) (domain.Store, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "wallet")
	}

	db, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	store := &walletStore{db: db}
	if err := store.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading wallet state: %w", err)
	}

	return store, nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
