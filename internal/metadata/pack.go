// Package metadata derives metadata account addresses and builds the
// instructions binding descriptive metadata to a mint, for both the
// Token-2022 self-contained variant and the Metaplex side-registry
// variant used with classic SPL mints.
package metadata

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/instructions"
)

// Fields is the descriptive metadata written on-chain.
type Fields struct {
	Name   string
	Symbol string
	URI    string

	// Additional holds extra key/value pairs. Unused by the request path
	// today but part of the packed layout.
	Additional [][2]string
}

// Pack serializes the Token-2022 metadata payload: update authority (zero
// for none), mint, the three strings and the additional key/value list.
// The returned length drives rent sizing, so it must match what the
// on-chain program will store byte for byte.
func Pack(updateAuthority, mint solana.PublicKey, f Fields) []byte {
	data := make([]byte, 0, 64+12+len(f.Name)+len(f.Symbol)+len(f.URI))
	data = append(data, updateAuthority.Bytes()...)
	data = append(data, mint.Bytes()...)
	data = instructions.AppendString(data, f.Name)
	data = instructions.AppendString(data, f.Symbol)
	data = instructions.AppendString(data, f.URI)

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(f.Additional)))
	data = append(data, count[:]...)
	for _, kv := range f.Additional {
		data = instructions.AppendString(data, kv[0])
		data = instructions.AppendString(data, kv[1])
	}
	return data
}

// Unpack is the inverse of Pack.
func Unpack(data []byte) (updateAuthority, mint solana.PublicKey, f Fields, err error) {
	if len(data) < 64 {
		return updateAuthority, mint, f, fmt.Errorf("payload truncated: %d bytes", len(data))
	}
	updateAuthority = solana.PublicKeyFromBytes(data[0:32])
	mint = solana.PublicKeyFromBytes(data[32:64])
	rest := data[64:]

	if f.Name, rest, err = instructions.ReadString(rest); err != nil {
		return updateAuthority, mint, f, fmt.Errorf("name: %w", err)
	}
	if f.Symbol, rest, err = instructions.ReadString(rest); err != nil {
		return updateAuthority, mint, f, fmt.Errorf("symbol: %w", err)
	}
	if f.URI, rest, err = instructions.ReadString(rest); err != nil {
		return updateAuthority, mint, f, fmt.Errorf("uri: %w", err)
	}

	if len(rest) < 4 {
		return updateAuthority, mint, f, fmt.Errorf("additional metadata header truncated")
	}
	count := binary.LittleEndian.Uint32(rest)
	rest = rest[4:]
	for i := uint32(0); i < count; i++ {
		var k, v string
		if k, rest, err = instructions.ReadString(rest); err != nil {
			return updateAuthority, mint, f, fmt.Errorf("additional key %d: %w", i, err)
		}
		if v, rest, err = instructions.ReadString(rest); err != nil {
			return updateAuthority, mint, f, fmt.Errorf("additional value %d: %w", i, err)
		}
		f.Additional = append(f.Additional, [2]string{k, v})
	}
	if len(rest) != 0 {
		return updateAuthority, mint, f, fmt.Errorf("%d trailing bytes", len(rest))
	}
	return updateAuthority, mint, f, nil
}
