package solana

import "context"

// RPCClient defines the read-only Solana RPC surface this service needs.
// The service never submits transactions; it only reads balances, account
// existence, rent minimums and a recent blockhash.
type RPCClient interface {
	// GetBalance returns the lamport balance of an account.
	GetBalance(ctx context.Context, address string) (uint64, error)

	// GetLatestBlockhash returns a recent blockhash and the last block
	// height at which a transaction using it stays valid.
	GetLatestBlockhash(ctx context.Context) (*LatestBlockhash, error)

	// AccountExists reports whether an account exists on-chain.
	AccountExists(ctx context.Context, address string) (bool, error)

	// GetMinimumBalanceForRentExemption returns the lamports needed to
	// make an account of the given byte size rent-exempt.
	GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
}
