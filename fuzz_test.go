package ascon_test

import (
	"bytes"
	"crypto/sha3"
	"encoding/binary"
	"testing"

	"github.com/asconcore/ascon"
	fuzz "github.com/trailofbits/go-fuzz-utils"
)

// FuzzXofChunking checks property 5/6: splitting input into arbitrary chunks and splitting the requested output
// into arbitrary chunks never changes the digest produced by the one-shot Xof function.
func FuzzXofChunking(f *testing.F) {
	drbg := sha3.NewSHAKE128()
	_, _ = drbg.Write([]byte("ascon xof chunking"))

	for range 10 {
		seed := make([]byte, 256)
		_, _ = drbg.Read(seed)
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		msg, err := tp.GetBytes()
		if err != nil {
			t.Skip(err)
		}

		chunkCount, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}

		var want [32]byte
		ascon.Xof(want[:], msg)

		x := ascon.NewXOF()
		rest := msg
		for n := int(chunkCount)%7 + 1; n > 0 && len(rest) > 0; n-- {
			take := len(rest)/n + 1
			if take > len(rest) {
				take = len(rest)
			}
			x.Absorb(rest[:take])
			rest = rest[take:]
		}
		if len(rest) > 0 {
			x.Absorb(rest)
		}

		var got [32]byte
		outChunks, err := tp.GetByte()
		if err != nil {
			outChunks = 1
		}
		remaining := got[:]
		for n := int(outChunks)%5 + 1; n > 0 && len(remaining) > 0; n-- {
			take := len(remaining)/n + 1
			if take > len(remaining) {
				take = len(remaining)
			}
			x.Squeeze(remaining[:take])
			remaining = remaining[take:]
		}

		if !bytes.Equal(want[:], got[:]) {
			t.Fatalf("chunked Xof diverged: %x != %x", got, want)
		}
	})
}

// FuzzPermuteMaskedEquivalence checks property 2 against random states, entropy, and start rounds: unsharing a
// 4-share masked permutation always equals the unmasked permutation on the same input.
func FuzzPermuteMaskedEquivalence(f *testing.F) {
	drbg := sha3.NewSHAKE128()
	_, _ = drbg.Write([]byte("ascon masked equivalence"))

	for range 10 {
		seed := make([]byte, 64)
		_, _ = drbg.Read(seed)
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		var b [40]byte
		n, err := tp.GetBytes()
		if err != nil {
			t.Skip(err)
		}
		copy(b[:], n)

		firstRoundByte, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		firstRound := int(firstRoundByte) % 13

		entropyBytes, err := tp.GetBytes()
		if err != nil || len(entropyBytes) < 24 {
			t.Skip(err)
		}

		var e ascon.Entropy4
		for i := range e {
			e[i] = binary.BigEndian.Uint32(entropyBytes[i*4 : i*4+4])
		}

		want := ascon.ToRegular(&b)
		ascon.Permute(&want, firstRound)

		s := ascon.ToRegular(&b)
		m := ascon.NewMaskedState4(&s, &e)
		ascon.PermuteMasked4(&m, firstRound, &e)

		if m.Unshare() != want {
			t.Fatalf("masked permutation diverged from unmasked at firstRound=%d", firstRound)
		}
	})
}
