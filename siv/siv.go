// Package siv implements Ascon-80pq-SIV, a Synthetic Initialization Vector AEAD mode built on the Ascon
// permutation. SIV derives the stream cipher's effective nonce from the key, associated data, and plaintext, giving
// deterministic, nonce-misuse-resistant encryption alongside the usual nonce-based interface.
package siv

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/asconcore/ascon"
	"github.com/asconcore/ascon/internal/mem"
)

// Parameter sizes for Ascon-80pq-SIV, chosen for an 80-bit post-quantum security target.
const (
	KeySize   = 20
	NonceSize = 16
	TagSize   = 16
)

const (
	iv1 = 0xa1400c06 // authentication phase
	iv2 = 0xa2400c06 // encryption phase
)

// ErrAuthFailed is returned by Open when the ciphertext is too short to contain a tag, or the recomputed tag does
// not match the one attached to the ciphertext. Callers must treat the absence of plaintext as the only observable
// outcome of either cause: ErrAuthFailed never distinguishes them.
var ErrAuthFailed = errors.New("ascon/siv: message authentication failed")

// New returns a cipher.AEAD implementing Ascon-80pq-SIV with the given key. key must be KeySize bytes.
func New(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.New("ascon/siv: key must be 20 bytes")
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &aead{key: k}, nil
}

type aead struct {
	key []byte
}

func (a *aead) NonceSize() int { return NonceSize }
func (a *aead) Overhead() int  { return TagSize }

// Seal encrypts and authenticates plaintext, appending the result to dst. The returned slice is
// len(plaintext)+TagSize bytes longer than dst: the keystream-masked plaintext followed by the synthetic tag.
func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic("ascon/siv: invalid nonce size")
	}

	tag := a.deriveTag(nonce, additionalData, plaintext)

	ret, out := mem.SliceForAppend(dst, len(plaintext)+TagSize)
	ciphertext, tagOut := out[:len(plaintext)], out[len(plaintext):]

	encState := initState(iv2, a.key, tag)
	keystreamXOR(&encState, ciphertext, plaintext)
	copy(tagOut, tag)

	return ret
}

// Open decrypts and authenticates ciphertext, appending the recovered plaintext to dst. If authentication fails,
// Open returns a nil slice and ErrAuthFailed, and nothing is written into dst; no partial or unauthenticated
// plaintext is ever returned.
func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		panic("ascon/siv: invalid nonce size")
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthFailed
	}

	ct, receivedTag := ciphertext[:len(ciphertext)-TagSize], ciphertext[len(ciphertext)-TagSize:]

	plaintext := make([]byte, len(ct))
	encState := initState(iv2, a.key, receivedTag)
	keystreamXOR(&encState, plaintext, ct)

	expectedTag := a.deriveTag(nonce, additionalData, plaintext)
	if subtle.ConstantTimeCompare(expectedTag, receivedTag) == 0 {
		mem.Zero(plaintext)
		return nil, ErrAuthFailed
	}

	ret, out := mem.SliceForAppend(dst, len(plaintext))
	copy(out, plaintext)
	return ret, nil
}

// deriveTag runs the authentication phase: absorb associated data and plaintext under a domain separator, and
// derive the 16-byte synthetic tag that both authenticates the message and seeds the encryption phase.
//
// Both the associated-data and message absorption phases pad unconditionally — even an empty or block-aligned
// segment still absorbs a trailing padding block — matching the reference SpongeWrap-style ascon_aead_absorb_8
// rather than Sponge's generic alignment-skipping Pad, so that the tag this derives matches the published NIST LWC
// KAT for ASCON-80pq-SIV.
func (a *aead) deriveTag(nonce, additionalData, plaintext []byte) []byte {
	state := initState(iv1, a.key, nonce)

	if len(additionalData) > 0 {
		sp := ascon.Sponge{State: state}
		sp.Absorb(additionalData, 6)
		sp.PadAlways(6)
		state = sp.State
	}

	// Domain separator distinguishing the associated-data phase from the message phase.
	state[4] ^= 0x01

	sp := ascon.Sponge{State: state}
	sp.Absorb(plaintext, 6)
	sp.PadAlways(6)
	state = sp.State

	return finalizeTag(state, a.key)
}

// initState builds the 40-byte initial block IV || key || nonce, permutes it with the full permutation, and XORs
// the key into the capacity region at byte offset 20, per the Ascon-80pq initialization procedure. nonce also
// stands in for the 16-byte tag during the encryption-phase initialization.
func initState(iv uint32, key, nonce []byte) ascon.State {
	var block [40]byte
	binary.BigEndian.PutUint32(block[0:4], iv)
	copy(block[4:24], key)
	copy(block[24:40], nonce)

	state := ascon.ToRegular(&block)
	ascon.Permute(&state, 0)

	b := ascon.FromRegular(&state)
	for i := 0; i < KeySize; i++ {
		b[20+i] ^= key[i]
	}
	return ascon.ToRegular(&b)
}

// finalizeTag XORs the key into the state twice, with a full permutation in between, and reads the synthetic tag
// directly from the last 16 bytes of the resulting state.
func finalizeTag(state ascon.State, key []byte) []byte {
	b := ascon.FromRegular(&state)
	for i := 0; i < 8; i++ {
		b[8+i] ^= key[i]
	}
	state = ascon.ToRegular(&b)
	ascon.Permute(&state, 0)

	b = ascon.FromRegular(&state)
	for i := 0; i < 16; i++ {
		b[24+i] ^= key[4+i]
	}

	tag := make([]byte, TagSize)
	copy(tag, b[24:40])
	return tag
}

// keystreamXOR generates an output-feedback keystream from state — permuting once per rate block before using its
// rate register — and XORs it with in to produce out. Encryption and decryption are the same operation.
func keystreamXOR(state *ascon.State, out, in []byte) {
	for len(in) > 0 {
		ascon.Permute(state, 6)

		n := len(in)
		if n > ascon.Rate {
			n = ascon.Rate
		}

		var block [8]byte
		binary.BigEndian.PutUint64(block[:], state[0])
		mem.XOR(out[:n], in[:n], block[:n])

		in, out = in[n:], out[n:]
	}
}

var _ cipher.AEAD = (*aead)(nil)
