package solana

// LatestBlockhash is the freshness token attached to a transaction. It is
// valid until the chain passes LastValidBlockHeight.
type LatestBlockhash struct {
	Blockhash            string
	LastValidBlockHeight uint64
}
