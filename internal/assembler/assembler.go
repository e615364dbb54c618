// Package assembler compiles an instruction plan into a partially signed,
// base64-serialized transaction ready for the payer's wallet signature.
package assembler

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/domain"
	sol "solana-token-forge/internal/solana"
)

const (
	// MaxTransactionSize is the wire-size ceiling of a serialized
	// transaction; anything larger can never land.
	MaxTransactionSize = 1232

	DefaultBlockhashAttempts = 3
	DefaultRetryDelay        = 2 * time.Second
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithBlockhashAttempts overrides how often the blockhash fetch retries.
func WithBlockhashAttempts(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithRetryDelay overrides the fixed delay between blockhash attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(a *Assembler) { a.delay = d }
}

// Assembler owns the final compilation step: blockhash anchoring, mint
// signature, serialization and the size check.
type Assembler struct {
	rpc      sol.RPCClient
	attempts int
	delay    time.Duration
}

// New creates an Assembler with the default retry policy.
func New(rpc sol.RPCClient, opts ...Option) *Assembler {
	a := &Assembler{
		rpc:      rpc,
		attempts: DefaultBlockhashAttempts,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the assembled transaction plus the anchoring details the
// caller needs to submit and confirm it.
type Result struct {
	SerializedTransaction string // base64
	Blockhash             string
	LastValidBlockHeight  uint64
	Size                  int

	// Signatures in message order: the payer slot stays zero until the
	// wallet signs.
	Signatures []solana.Signature
}

// Assemble anchors the plan to a fresh blockhash, signs with the mint key
// only and serializes. The payer signature slot is left empty; the mint
// private key never leaves this function's scope.
func (a *Assembler) Assemble(ctx context.Context, plan *domain.InstructionPlan, payer solana.PublicKey, mint domain.MintKeypair) (*Result, error) {
	latest, err := a.latestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	blockhash, err := solana.HashFromBase58(latest.Blockhash)
	if err != nil {
		return nil, fmt.Errorf("%w: parse blockhash %q: %v", domain.ErrSerialization, latest.Blockhash, err)
	}

	tx, err := solana.NewTransaction(plan.Raw(), blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, fmt.Errorf("%w: compile message: %v", domain.ErrSerialization, err)
	}

	mintKey := mint.PrivateKey
	mintPub := mint.PublicKey()
	sigs, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(mintPub) {
			return &mintKey
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: partial sign: %v", domain.ErrSerialization, err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSerialization, err)
	}
	if len(raw) > MaxTransactionSize {
		return nil, fmt.Errorf("%w: transaction is %d bytes, limit %d",
			domain.ErrSerialization, len(raw), MaxTransactionSize)
	}

	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", domain.ErrSerialization, err)
	}

	return &Result{
		SerializedTransaction: encoded,
		Blockhash:             latest.Blockhash,
		LastValidBlockHeight:  latest.LastValidBlockHeight,
		Size:                  len(raw),
		Signatures:            sigs,
	}, nil
}

// latestBlockhash fetches with a fixed-delay retry. Transient RPC failures
// are common enough that a single attempt would fail real requests, but
// unbounded retries would hold the HTTP request open indefinitely.
func (a *Assembler) latestBlockhash(ctx context.Context) (*sol.LatestBlockhash, error) {
	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		latest, err := a.rpc.GetLatestBlockhash(ctx)
		if err == nil {
			return latest, nil
		}
		lastErr = err

		if attempt < a.attempts && a.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.delay):
			}
		}
	}
	return nil, fmt.Errorf("%w: blockhash after %d attempts: %v",
		domain.ErrNetworkUnavailable, a.attempts, lastErr)
}
