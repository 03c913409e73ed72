package ascon

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"
)

func TestPermuteZeroState(t *testing.T) {
	var b [40]byte
	s := ToRegular(&b)
	Permute(&s, 0)
	got := FromRegular(&s)

	want, err := hex.DecodeString("78ea7ae5cfebb1089b9bfb8513b560f76937f83e03d11a503fe53f36f2c1178c045d648e4def12c9")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got[:], want) {
		t.Fatalf("Permute(0^320, 0) = %x, want %x", got, want)
	}
}

// TestPermuteResumable checks that running rounds 0..k-1 by hand and then calling Permute(s, k) for the remaining
// rounds gives the same result as a single Permute(s, 0) call, for every split point k.
func TestPermuteResumable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		var b [40]byte
		rng.Read(b[:])

		full := ToRegular(&b)
		Permute(&full, 0)

		for k := 0; k <= 12; k++ {
			s := ToRegular(&b)
			x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]
			for _, c := range RoundConstants[:k] {
				x0, x1, x2, x3, x4 = round(x0, x1, x2, x3, x4, c)
			}
			s[0], s[1], s[2], s[3], s[4] = x0, x1, x2, x3, x4

			Permute(&s, k)
			if s != full {
				t.Fatalf("iteration %d, split %d: resumed permutation diverged from Permute(s, 0)", i, k)
			}
		}
	}
}

func TestRegularRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var b [40]byte
	rng.Read(b[:])

	s := ToRegular(&b)
	got := FromRegular(&s)
	if !bytes.Equal(b[:], got[:]) {
		t.Fatalf("ToRegular/FromRegular round trip mismatch: got %x, want %x", got, b)
	}
}

func TestClear(t *testing.T) {
	s := State{1, 2, 3, 4, 5}
	s.Clear()
	if s != (State{}) {
		t.Fatalf("Clear() left non-zero state: %v", s)
	}
}
