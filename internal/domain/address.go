package domain

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

// ParseWalletAddress parses a base58 wallet address and verifies it is a
// valid ed25519 curve point. Wallets must be on-curve; program-derived
// addresses are not and cannot own associated token accounts through the
// default derivation.
func ParseWalletAddress(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: address %q: %v", ErrValidation, s, err)
	}
	if !isOnCurve(pk.Bytes()) {
		return solana.PublicKey{}, fmt.Errorf("%w: address %q is not on the ed25519 curve", ErrValidation, s)
	}
	return pk, nil
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
