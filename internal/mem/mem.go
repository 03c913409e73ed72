// Package mem provides small byte-slice helpers shared by the sponge and AEAD layers: constant-size XOR,
// append-without-reallocation, and best-effort zeroization of secret scratch buffers.
package mem

import (
	"crypto/subtle"
	"slices"
)

// XOR XORs a and b into dst; dst, a and b must all have the same length. It dispatches to subtle.XORBytes once the
// slices are long enough for its SIMD-accelerated path to pay for itself, and falls back to a scalar loop for the
// short, rate-sized blocks the sponge layer deals in most of the time.
func XOR(dst, a, b []byte) {
	if len(dst) > 16 {
		subtle.XORBytes(dst, a, b)
	} else {
		for i := range dst {
			dst[i] = a[i] ^ b[i]
		}
	}
}

// SliceForAppend takes a slice and a requested number of additional bytes. It returns a slice with the contents of
// in followed by n fresh bytes, and a second slice aliasing only those fresh bytes, avoiding an allocation when in
// already has the capacity. This is the usual shape of a cipher.AEAD's Seal/Open buffer argument.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	head = slices.Grow(in, n)
	head = head[:len(in)+n]
	tail = head[len(in):]
	return head, tail
}

// Zero overwrites b with zeros. It is used to scrub scratch buffers and recovered-but-unauthenticated plaintext
// before they are released, per the secret-hygiene contract carried by every state-owning type in this module.
func Zero(b []byte) {
	clear(b)
}
