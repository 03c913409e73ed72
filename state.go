package ascon

import "math/bits"

// A State is the 320-bit state of the Ascon permutation, held as five 64-bit words in the "regular" (big-endian)
// form used by the sponge and mode constructions in this package.
type State [5]uint64

// RoundConstants holds the twelve round constants used by the addition-of-constants layer, indexed by round number
// (0 is the first round of a full p12 application). Only the low byte of each constant is non-zero.
var RoundConstants = [12]uint64{
	0xf0, 0xe1, 0xd2, 0xc3, 0xb4, 0xa5, 0x96, 0x87, 0x78, 0x69, 0x5a, 0x4b,
}

// Permute applies rounds firstRound..11 of the Ascon permutation to s in place. firstRound must be in [0, 12];
// firstRound == 12 is a no-op. Common values are 0 (the full p12, used during initialization and finalization) and 6
// (p6, used between rate blocks in the sponge constructions defined by this package).
func Permute(s *State, firstRound int) {
	x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]

	for _, c := range RoundConstants[firstRound:] {
		x0, x1, x2, x3, x4 = round(x0, x1, x2, x3, x4, c)
	}

	s[0], s[1], s[2], s[3], s[4] = x0, x1, x2, x3, x4
}

// round applies a single round of the permutation: addition of the round constant, the 5-bit substitution layer, and
// the linear diffusion layer.
func round(x0, x1, x2, x3, x4, c uint64) (uint64, uint64, uint64, uint64, uint64) {
	// Addition of round constant.
	x2 ^= c

	// Substitution layer.
	x0 ^= x4
	x4 ^= x3
	x2 ^= x1

	t0 := ^x0 & x1
	t1 := ^x1 & x2
	t2 := ^x2 & x3
	t3 := ^x3 & x4
	t4 := ^x4 & x0

	x0 ^= t1
	x1 ^= t2
	x2 ^= t3
	x3 ^= t4
	x4 ^= t0

	x1 ^= x0
	x0 ^= x4
	x3 ^= x2
	x2 = ^x2

	// Linear diffusion layer.
	x0 ^= bits.RotateLeft64(x0, -19) ^ bits.RotateLeft64(x0, -28)
	x1 ^= bits.RotateLeft64(x1, -61) ^ bits.RotateLeft64(x1, -39)
	x2 ^= bits.RotateLeft64(x2, -1) ^ bits.RotateLeft64(x2, -6)
	x3 ^= bits.RotateLeft64(x3, -10) ^ bits.RotateLeft64(x3, -17)
	x4 ^= bits.RotateLeft64(x4, -7) ^ bits.RotateLeft64(x4, -41)

	return x0, x1, x2, x3, x4
}

// ToRegular converts a 40-byte big-endian serialization of a state into a State.
func ToRegular(b *[40]byte) State {
	var s State
	for i := range s {
		s[i] = be64dec(b[i*8 : i*8+8])
	}
	return s
}

// FromRegular serializes s as 40 big-endian bytes.
func FromRegular(s *State) [40]byte {
	var b [40]byte
	for i, w := range s {
		be64enc(b[i*8:i*8+8], w)
	}
	return b
}

// Clear zeros s, destroying any secret material it held.
func (s *State) Clear() {
	s[0], s[1], s[2], s[3], s[4] = 0, 0, 0, 0, 0
}
