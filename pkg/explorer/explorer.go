package explorer

// Service is the representation of a block explorer that allows to fetch
// address, transaction, mempool and fee data from the Bitcoin blockchain.
//
// Read-style queries (address info, address transactions, mempool, fees,
// chain tip) always return a renderable value: on upstream failure they
// return a safe zero/empty/demo default along with the error, so a caller is
// free to ignore the error and still hold usable data. Single transaction
// and block lookups have no meaningful default and fail with an explicit
// error instead.
type Service interface {
	// GetAddressInfo returns the funded/spent sums and counts for the given
	// address. On failure the returned info is all-zero.
	GetAddressInfo(address string) (*AddressInfo, error)
	// GetAddressTransactions returns up to limit raw transaction records for
	// the given address, most recent first. On failure the returned list is
	// empty.
	GetAddressTransactions(address string, limit int) ([]TxRecord, error)
	// GetMempoolTransactions returns the list of unconfirmed transactions
	// currently sitting in the mempool. On failure it falls back to a fixed
	// demo dataset so that the mempool view is never empty.
	GetMempoolTransactions() ([]TxRecord, error)
	// GetRecommendedFees returns the fee estimations in sat/vB. Falls back to
	// fixed demo values on failure.
	GetRecommendedFees() (*RecommendedFees, error)
	// GetBlockHeight returns the height of the chain tip. Falls back to a
	// fixed placeholder height on failure.
	GetBlockHeight() (int, error)
	// GetTransaction returns the raw record of the tx identified by its hash.
	GetTransaction(txid string) (*TxRecord, error)
	// GetBlock returns the block identified by its hash.
	GetBlock(hash string) (*Block, error)
}
