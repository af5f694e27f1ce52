package explorer

// AddressInfo holds the aggregated chain stats of an address. Sums are
// expressed in satoshis.
type AddressInfo struct {
	FundedTxoCount int64 `json:"funded_txo_count"`
	FundedTxoSum   int64 `json:"funded_txo_sum"`
	SpentTxoCount  int64 `json:"spent_txo_count"`
	SpentTxoSum    int64 `json:"spent_txo_sum"`
	TxCount        int64 `json:"tx_count"`
}

// TxStatus is the confirmation status of a transaction as reported by the
// explorer.
type TxStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   int64  `json:"block_time,omitempty"`
}

// TxOutput is a transaction output, also used as the prevout of an input.
// Value is expressed in satoshis.
type TxOutput struct {
	Scriptpubkey        string `json:"scriptpubkey"`
	ScriptpubkeyAsm     string `json:"scriptpubkey_asm"`
	ScriptpubkeyType    string `json:"scriptpubkey_type"`
	ScriptpubkeyAddress string `json:"scriptpubkey_address"`
	Value               int64  `json:"value"`
}

// TxInput is a transaction input along with the output it spends.
type TxInput struct {
	Txid    string   `json:"txid"`
	Vout    uint32   `json:"vout"`
	Prevout TxOutput `json:"prevout"`
}

// TxRecord is the raw transaction record returned by the explorer, both for
// address histories and for mempool streaming events.
type TxRecord struct {
	Txid   string     `json:"txid"`
	Fee    int64      `json:"fee"`
	Weight int64      `json:"weight"`
	Status TxStatus   `json:"status"`
	Vin    []TxInput  `json:"vin"`
	Vout   []TxOutput `json:"vout"`
}

// RecommendedFees holds the explorer fee estimations in sat/vB.
type RecommendedFees struct {
	FastestFee  int64 `json:"fastestFee"`
	HalfHourFee int64 `json:"halfHourFee"`
	HourFee     int64 `json:"hourFee"`
	EconomyFee  int64 `json:"economyFee"`
	MinimumFee  int64 `json:"minimumFee"`
}

// Block is the descriptor of a block as returned by the explorer.
type Block struct {
	ID                string `json:"id"`
	Height            int64  `json:"height"`
	Version           int64  `json:"version"`
	Timestamp         int64  `json:"timestamp"`
	TxCount           int64  `json:"tx_count"`
	Size              int64  `json:"size"`
	Weight            int64  `json:"weight"`
	MerkleRoot        string `json:"merkle_root"`
	PreviousBlockHash string `json:"previousblockhash"`
	Nonce             int64  `json:"nonce"`
	Bits              int64  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}
