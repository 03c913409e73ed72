package ascon

import (
	"math/rand"
	"testing"
)

func randEntropy4(rng *rand.Rand) *Entropy4 {
	var e Entropy4
	for i := range e {
		e[i] = rng.Uint32()
	}
	return &e
}

func randEntropy2(rng *rand.Rand) *Entropy2 {
	var e Entropy2
	for i := range e {
		e[i] = rng.Uint32()
	}
	return &e
}

// TestPermuteMasked4Equivalence checks property 2: unshare(permute_masked_4(share(s), 0, e)) == permute(s, 0) for
// random states and random sharings.
func TestPermuteMasked4Equivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		var b [40]byte
		rng.Read(b[:])

		for _, firstRound := range []int{0, 6} {
			s := ToRegular(&b)
			e := randEntropy4(rng)
			m := NewMaskedState4(&s, e)

			PermuteMasked4(&m, firstRound, e)
			got := m.Unshare()

			want := ToRegular(&b)
			Permute(&want, firstRound)

			if got != want {
				t.Fatalf("iteration %d, firstRound %d: unshare(permute_masked_4(share(s))) != permute(s)", i, firstRound)
			}
		}
	}
}

func TestPermuteMasked2Equivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		var b [40]byte
		rng.Read(b[:])

		for _, firstRound := range []int{0, 6} {
			s := ToRegular(&b)
			e := randEntropy2(rng)
			m := NewMaskedState2(&s, e)

			PermuteMasked2(&m, firstRound, e)
			got := m.Unshare()

			want := ToRegular(&b)
			Permute(&want, firstRound)

			if got != want {
				t.Fatalf("iteration %d, firstRound %d: unshare(permute_masked_2(share(s))) != permute(s)", i, firstRound)
			}
		}
	}
}

// TestNewMaskedState4Unshare checks that sharing and immediately unsharing recovers the original state.
func TestNewMaskedState4Unshare(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		var b [40]byte
		rng.Read(b[:])
		s := ToRegular(&b)

		e := randEntropy4(rng)
		m := NewMaskedState4(&s, e)
		if m.Unshare() != s {
			t.Fatalf("iteration %d: NewMaskedState4 does not round-trip through Unshare", i)
		}
	}
}

// TestMaskedState4NoShareIsUnmasked checks that, for a nonzero secret, no individual share equals the secret or the
// zero state outright — a cheap sanity check against an accidentally no-op sharing, not a security proof.
func TestMaskedState4NoShareIsUnmasked(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	var b [40]byte
	rng.Read(b[:])
	s := ToRegular(&b)

	e := randEntropy4(rng)
	m := NewMaskedState4(&s, e)

	for i, share := range m.Shares {
		if share == s || share == (State{}) {
			t.Fatalf("share %d equals the unshared secret or the zero state", i)
		}
	}
}

func TestReshare4PreservesValue(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var b [40]byte
	rng.Read(b[:])
	s := ToRegular(&b)

	e := randEntropy4(rng)
	m := NewMaskedState4(&s, e)

	before := m.Shares
	m.Reshare(randEntropy4(rng))

	if m.Unshare() != s {
		t.Fatal("Reshare changed the unshared value")
	}
	if m.Shares == before {
		t.Fatal("Reshare produced identical shares")
	}
}
