package ascon

import "math/bits"

// A MaskedState4 is a first-order-and-higher masked representation of a permutation State as four shares whose
// word-wise XOR recovers the unmasked word: Shares[0][w] ^ Shares[1][w] ^ Shares[2][w] ^ Shares[3][w] == w for each
// of the five words.
//
// MaskedState4 values are intended to defeat power- and EM-based side channels: no single share, and no
// intermediate value computed from fewer than all four shares, is a deterministic function of the unmasked secret.
type MaskedState4 struct {
	Shares [4]State
}

// Entropy4 is the randomness pool consumed and refreshed by PermuteMasked4. The caller fills it before each call;
// PermuteMasked4 overwrites it with fresh material for the caller's next use and retains no copy.
type Entropy4 [6]uint32

// NewMaskedState4 shares w into four random-looking shares using the given entropy, such that Unshare recovers w.
func NewMaskedState4(w *State, entropy *Entropy4) MaskedState4 {
	var m MaskedState4
	r0 := entropyWord(entropy[0], entropy[1])
	r1 := entropyWord(entropy[2], entropy[3])
	r2 := entropyWord(entropy[4], entropy[5])
	for i := range w {
		m.Shares[0][i] = r0
		m.Shares[1][i] = r1
		m.Shares[2][i] = r2
		m.Shares[3][i] = w[i] ^ r0 ^ r1 ^ r2
	}
	return m
}

// Unshare recovers the unmasked State from m by XORing its four shares together.
func (m *MaskedState4) Unshare() State {
	var s State
	for i := range s {
		s[i] = m.Shares[0][i] ^ m.Shares[1][i] ^ m.Shares[2][i] ^ m.Shares[3][i]
	}
	return s
}

// Reshare replaces m's shares with a fresh representation of the same unmasked value, using the given entropy. The
// result is statistically independent of m's previous share values given independent entropy.
func (m *MaskedState4) Reshare(entropy *Entropy4) {
	w := m.Unshare()
	*m = NewMaskedState4(&w, entropy)
}

// shareRotations4 gives the rotation amount applied to the blinding word for the share pair (i, j) in the masked AND
// gadget used by the substitution layer. The diagonal (i == j) is unused: the product term y[i]&z[i] is not
// blinded. Off-diagonal entries use distinct rotation amounts so that no two pairs are blinded with the same word.
var shareRotations4 = [4][4]int{
	{0, 7, 13, 29},
	{7, 0, 19, 37},
	{13, 19, 0, 43},
	{29, 37, 43, 0},
}

// maskedPairs4 enumerates the six unordered share-index pairs combined by the 4-share masked AND gadget.
var maskedPairs4 = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// PermuteMasked4 applies the Ascon permutation to a 4-share masked state, rounds firstRound..11, consuming and
// refreshing entropy. Its functional contract is identical to Permute: Unshare(PermuteMasked4(Share(s), ...)) ==
// Permute(s, firstRound) bit-for-bit, for any valid sharing of s.
//
// The non-linear step of each round never computes (~y)&z directly on an unmasked value. Instead it expands the AND
// into a cross-share sum over all (i, j) share pairs using the classic ISW multiplication gadget: each pair's cross
// terms are blinded with a word drawn from the entropy pool, rotated per the shareRotations4 table. All five AND
// gates of a round use the same blinding words; the words evolve only between rounds.
func PermuteMasked4(m *MaskedState4, firstRound int, entropy *Entropy4) {
	t := maskSeed4(entropy)

	for round := firstRound; round < 12; round++ {
		t = maskedRound4(m, round, t)
	}

	refreshEntropy4(entropy, t)
}

func maskSeed4(entropy *Entropy4) [3]uint64 {
	return [3]uint64{
		entropyWord(entropy[0], entropy[1]),
		entropyWord(entropy[2], entropy[3]),
		entropyWord(entropy[4], entropy[5]),
	}
}

// refreshEntropy4 writes the round-evolved mask seed back into the caller's entropy pool so a subsequent call
// consumes fresh-looking material instead of retracing this call's masks.
func refreshEntropy4(entropy *Entropy4, t [3]uint64) {
	entropy[0], entropy[1] = uint32(t[0]), uint32(t[0]>>32)
	entropy[2], entropy[3] = uint32(t[1]), uint32(t[1]>>32)
	entropy[4], entropy[5] = uint32(t[2]), uint32(t[2]>>32)
}

func entropyWord(lo, hi uint32) uint64 {
	return uint64(lo) | uint64(hi)<<32
}

// maskedRound4 applies one round of the permutation to the 4-share state, returning the evolved mask seed for the
// next round.
func maskedRound4(m *MaskedState4, round int, t [3]uint64) [3]uint64 {
	c := RoundConstants[round]

	var x0, x1, x2, x3, x4 [4]uint64
	for i := 0; i < 4; i++ {
		x0[i], x1[i], x2[i], x3[i], x4[i] = m.Shares[i][0], m.Shares[i][1], m.Shares[i][2], m.Shares[i][3], m.Shares[i][4]
	}

	// Addition of round constant: affine, applied to a single share only.
	x2[0] ^= c

	// Substitution layer, share-wise. The linear XOR steps are applied independently to each share; the AND steps
	// use the masked AND gadget below.
	for i := 0; i < 4; i++ {
		x0[i] ^= x4[i]
		x4[i] ^= x3[i]
		x2[i] ^= x1[i]
	}

	// t0_i = (~x0_i) & x1_i, masked. NOT is affine, so it is folded into share 0 only.
	notX0 := x0
	notX0[0] = ^notX0[0]
	t0 := maskedAND4(notX0, x1, t)
	t1 := maskedAND4(invertShare0(x1), x2, t)
	t2 := maskedAND4(invertShare0(x2), x3, t)
	t3 := maskedAND4(invertShare0(x3), x4, t)
	t4 := maskedAND4(invertShare0(x4), x0, t)

	for i := 0; i < 4; i++ {
		x0[i] ^= t1[i]
		x1[i] ^= t2[i]
		x2[i] ^= t3[i]
		x3[i] ^= t4[i]
		x4[i] ^= t0[i]
	}

	for i := 0; i < 4; i++ {
		x1[i] ^= x0[i]
		x0[i] ^= x4[i]
		x3[i] ^= x2[i]
	}
	x2[0] = ^x2[0]

	// Linear diffusion layer, share-wise.
	for i := 0; i < 4; i++ {
		x0[i] ^= bits.RotateLeft64(x0[i], -19) ^ bits.RotateLeft64(x0[i], -28)
		x1[i] ^= bits.RotateLeft64(x1[i], -61) ^ bits.RotateLeft64(x1[i], -39)
		x2[i] ^= bits.RotateLeft64(x2[i], -1) ^ bits.RotateLeft64(x2[i], -6)
		x3[i] ^= bits.RotateLeft64(x3[i], -10) ^ bits.RotateLeft64(x3[i], -17)
		x4[i] ^= bits.RotateLeft64(x4[i], -7) ^ bits.RotateLeft64(x4[i], -41)
	}

	// Refresh shares 0-2 of X4 with independent rotations of the reshare word, and fold the XOR of those three
	// rotations into share 3 so the net effect on the unshared value is zero: this is a mask refresh, not a change
	// to X4 itself. Evolve the word for the next round by rotating each channel by its designated amount.
	r0 := bits.RotateLeft64(t[0], 7)
	r1 := bits.RotateLeft64(t[1], 13)
	r2 := bits.RotateLeft64(t[2], 29)
	x4[0] ^= r0
	x4[1] ^= r1
	x4[2] ^= r2
	x4[3] ^= r0 ^ r1 ^ r2
	t = [3]uint64{r0, r1, r2}

	for i := 0; i < 4; i++ {
		m.Shares[i][0], m.Shares[i][1], m.Shares[i][2], m.Shares[i][3], m.Shares[i][4] = x0[i], x1[i], x2[i], x3[i], x4[i]
	}

	return t
}

func invertShare0(x [4]uint64) [4]uint64 {
	x[0] = ^x[0]
	return x
}

// maskedAND4 computes the masked AND of two 4-share values y and z, returning shares x such that
// x[0]^x[1]^x[2]^x[3] == (y[0]^y[1]^y[2]^y[3]) & (z[0]^z[1]^z[2]^z[3]), without ever combining more than one share of
// each operand in an unblinded term. It is the ISW multiplication gadget specialized to four shares, using t (rotated
// per-pair via shareRotations4) as the blinding material for each of the six cross terms.
func maskedAND4(y, z [4]uint64, t [3]uint64) [4]uint64 {
	var x [4]uint64
	for i := range x {
		x[i] = y[i] & z[i]
	}

	for k, p := range maskedPairs4 {
		i, j := p[0], p[1]
		r := bits.RotateLeft64(t[k%3], shareRotations4[i][j])
		x[i] ^= r
		x[j] ^= r ^ (y[i] & z[j]) ^ (y[j] & z[i])
	}

	return x
}

// A MaskedState2 is a first-order masked representation of a permutation State as two shares, analogous to
// MaskedState4 but with a 2x2 cross-share expansion in place of the 4x4 table.
type MaskedState2 struct {
	Shares [2]State
}

// Entropy2 is the randomness pool consumed and refreshed by PermuteMasked2.
type Entropy2 [3]uint32

// NewMaskedState2 shares w into two shares using the given entropy, such that Unshare recovers w.
func NewMaskedState2(w *State, entropy *Entropy2) MaskedState2 {
	var m MaskedState2
	r := entropyWord(entropy[0], entropy[1]) ^ uint64(entropy[2])<<16
	for i := range w {
		m.Shares[0][i] = r
		m.Shares[1][i] = w[i] ^ r
	}
	return m
}

// Unshare recovers the unmasked State from m.
func (m *MaskedState2) Unshare() State {
	var s State
	for i := range s {
		s[i] = m.Shares[0][i] ^ m.Shares[1][i]
	}
	return s
}

// Reshare replaces m's shares with a fresh representation of the same unmasked value.
func (m *MaskedState2) Reshare(entropy *Entropy2) {
	w := m.Unshare()
	*m = NewMaskedState2(&w, entropy)
}

// PermuteMasked2 applies the Ascon permutation to a 2-share masked state. See PermuteMasked4 for the general
// contract; this is the 2-share analog, using a single blinding word per round instead of three.
func PermuteMasked2(m *MaskedState2, firstRound int, entropy *Entropy2) {
	t := entropyWord(entropy[0], entropy[1]) ^ uint64(entropy[2])<<16

	for round := firstRound; round < 12; round++ {
		t = maskedRound2(m, round, t)
	}

	entropy[0], entropy[1] = uint32(t), uint32(t>>32)
	entropy[2] = uint32(t >> 16)
}

func maskedRound2(m *MaskedState2, round int, t uint64) uint64 {
	c := RoundConstants[round]

	var x0, x1, x2, x3, x4 [2]uint64
	for i := 0; i < 2; i++ {
		x0[i], x1[i], x2[i], x3[i], x4[i] = m.Shares[i][0], m.Shares[i][1], m.Shares[i][2], m.Shares[i][3], m.Shares[i][4]
	}

	x2[0] ^= c

	for i := 0; i < 2; i++ {
		x0[i] ^= x4[i]
		x4[i] ^= x3[i]
		x2[i] ^= x1[i]
	}

	notX0 := x0
	notX0[0] = ^notX0[0]
	t0 := maskedAND2(notX0, x1, t)
	t1 := maskedAND2(invertShare0_2(x1), x2, t)
	t2 := maskedAND2(invertShare0_2(x2), x3, t)
	t3 := maskedAND2(invertShare0_2(x3), x4, t)
	t4 := maskedAND2(invertShare0_2(x4), x0, t)

	for i := 0; i < 2; i++ {
		x0[i] ^= t1[i]
		x1[i] ^= t2[i]
		x2[i] ^= t3[i]
		x3[i] ^= t4[i]
		x4[i] ^= t0[i]
	}

	for i := 0; i < 2; i++ {
		x1[i] ^= x0[i]
		x0[i] ^= x4[i]
		x3[i] ^= x2[i]
	}
	x2[0] = ^x2[0]

	for i := 0; i < 2; i++ {
		x0[i] ^= bits.RotateLeft64(x0[i], -19) ^ bits.RotateLeft64(x0[i], -28)
		x1[i] ^= bits.RotateLeft64(x1[i], -61) ^ bits.RotateLeft64(x1[i], -39)
		x2[i] ^= bits.RotateLeft64(x2[i], -1) ^ bits.RotateLeft64(x2[i], -6)
		x3[i] ^= bits.RotateLeft64(x3[i], -10) ^ bits.RotateLeft64(x3[i], -17)
		x4[i] ^= bits.RotateLeft64(x4[i], -7) ^ bits.RotateLeft64(x4[i], -41)
	}

	// Refresh both shares of X4 with the same rotated word, canceling on the unshared value while still
	// decorrelating the two shares from the previous round's masks.
	r := bits.RotateLeft64(t, 7)
	x4[0] ^= r
	x4[1] ^= r
	t = r

	for i := 0; i < 2; i++ {
		m.Shares[i][0], m.Shares[i][1], m.Shares[i][2], m.Shares[i][3], m.Shares[i][4] = x0[i], x1[i], x2[i], x3[i], x4[i]
	}

	return t
}

func invertShare0_2(x [2]uint64) [2]uint64 {
	x[0] = ^x[0]
	return x
}

// maskedAND2 is the 2-share ISW AND gadget: x[0]^x[1] == (y[0]^y[1]) & (z[0]^z[1]), using t to blind the single
// cross term.
func maskedAND2(y, z [2]uint64, t uint64) [2]uint64 {
	x0 := (y[0] & z[0]) ^ t
	x1 := (y[1] & z[1]) ^ t ^ (y[0] & z[1]) ^ (y[1] & z[0])
	return [2]uint64{x0, x1}
}
