package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// String returns the hex form of d.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Combine строит хеш артефакта: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestString hashes a short string (dialect name, option set) into a Digest.
func DigestString(s string) Digest {
	return sha256.Sum256([]byte(s))
}
