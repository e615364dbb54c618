// Package stub provides an in-memory RPCClient for tests.
package stub

import (
	"context"
	"errors"

	"solana-token-forge/internal/solana"
)

// ErrUnavailable simulates a network failure when FailBlockhash is set.
var ErrUnavailable = errors.New("rpc unavailable")

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Balances map[string]uint64
	Accounts map[string]bool // address -> exists
	Hash     solana.LatestBlockhash

	// RentPerByte approximates rent: rent = RentBase + size*RentPerByte.
	RentBase    uint64
	RentPerByte uint64

	// FailBlockhash makes the next N GetLatestBlockhash calls fail.
	FailBlockhash int

	// BlockhashCalls counts GetLatestBlockhash invocations.
	BlockhashCalls int
}

// NewRPCClient creates a stub with a fixed blockhash and rent schedule
// roughly matching mainnet (6960 lamports base + ~6960 per byte is not the
// real curve; tests only rely on monotonicity in size).
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Balances: make(map[string]uint64),
		Accounts: make(map[string]bool),
		Hash: solana.LatestBlockhash{
			Blockhash:            "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oLubtWJwPqbVU",
			LastValidBlockHeight: 150_000_000,
		},
		RentBase:    890_880,
		RentPerByte: 6_960,
	}
}

// GetBalance returns the configured balance for an address.
func (c *RPCClient) GetBalance(_ context.Context, address string) (uint64, error) {
	return c.Balances[address], nil
}

// GetLatestBlockhash returns the fixed blockhash, failing while
// FailBlockhash is positive.
func (c *RPCClient) GetLatestBlockhash(_ context.Context) (*solana.LatestBlockhash, error) {
	c.BlockhashCalls++
	if c.FailBlockhash > 0 {
		c.FailBlockhash--
		return nil, ErrUnavailable
	}
	h := c.Hash
	return &h, nil
}

// AccountExists reports existence from the stub store.
func (c *RPCClient) AccountExists(_ context.Context, address string) (bool, error) {
	return c.Accounts[address], nil
}

// GetMinimumBalanceForRentExemption returns a size-linear rent minimum.
func (c *RPCClient) GetMinimumBalanceForRentExemption(_ context.Context, size uint64) (uint64, error) {
	return c.RentBase + size*c.RentPerByte, nil
}
