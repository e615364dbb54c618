package instructions

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

func appendU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendU64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// AppendString appends a borsh string: u32 little-endian byte length
// followed by the raw bytes.
func AppendString(dst []byte, s string) []byte {
	dst = appendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

// ReadString reads a borsh string and returns it with the remaining bytes.
func ReadString(src []byte) (string, []byte, error) {
	if len(src) < 4 {
		return "", nil, fmt.Errorf("string header truncated")
	}
	n := binary.LittleEndian.Uint32(src)
	src = src[4:]
	if uint32(len(src)) < n {
		return "", nil, fmt.Errorf("string body truncated: want %d bytes, have %d", n, len(src))
	}
	return string(src[:n]), src[n:], nil
}

// appendOptionKey appends a COption<Pubkey>: one tag byte, then the key
// when present.
func appendOptionKey(dst []byte, pk *solana.PublicKey) []byte {
	if pk == nil {
		return append(dst, 0)
	}
	dst = append(dst, 1)
	return append(dst, pk.Bytes()...)
}
