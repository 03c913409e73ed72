package ascon

import "github.com/asconcore/ascon/internal/mem"

// Rate is the number of bytes of sponge state mixed with data on each absorb or squeeze step. The remaining 32
// bytes of the 40-byte state form the capacity and are never directly exposed.
const Rate = 8

// padByte marks the end of absorbed data within a rate block, as prescribed by the Ascon padding rule.
const padByte = 0x80

// mode records which phase of the XOF/XOFA absorb-squeeze state machine a Sponge is in.
type mode uint8

const (
	modeAbsorb mode = iota
	modeSqueeze
)

// A Sponge is the absorb/squeeze state machine shared by Ascon-Xof and Ascon-XofA: a permutation state, a count of
// bytes already consumed or produced from the current rate block, and a one-way absorb-to-squeeze mode flag.
//
// The zero value is not a valid Sponge; use NewSponge.
type Sponge struct {
	State State
	count int
	mode  mode
}

// NewSponge initializes a sponge from a 64-bit IV: iv is loaded into X0, the remaining words are zeroed, and the
// full permutation is applied once. The resulting state is the starting point for absorbing input.
func NewSponge(iv uint64) *Sponge {
	s := &Sponge{State: State{iv, 0, 0, 0, 0}}
	Permute(&s.State, 0)
	return s
}

// Absorb mixes data into the sponge's rate, permuting with startRound between each full 8-byte block. data may be
// any length; partial trailing bytes are buffered internally and combined with subsequent Absorb or Pad calls.
//
// Absorb panics if the sponge has already transitioned to squeeze mode.
func (s *Sponge) Absorb(data []byte, startRound int) {
	if s.mode == modeSqueeze {
		panic("ascon: absorb after squeeze")
	}

	for len(data) > 0 {
		n := Rate - s.count
		if n > len(data) {
			n = len(data)
		}
		s.xorBlock(s.count, data[:n])
		s.count += n
		data = data[n:]

		if s.count == Rate {
			Permute(&s.State, startRound)
			s.count = 0
		}
	}
}

// xorBlock XORs b into the high bytes of X0 starting at byte offset off, matching the byte-addressable, big-endian
// view of the rate register.
func (s *Sponge) xorBlock(off int, b []byte) {
	var block [8]byte
	be64enc(block[:], s.State[0])
	mem.XOR(block[off:off+len(b)], block[off:off+len(b)], b)
	s.State[0] = be64dec(block[:])
}

// Pad finalizes a partial rate block by XORing in the padding byte and permuting once, then resets the block
// counter to zero. If no partial block is pending (count == 0), Pad is a no-op: no spurious permutation occurs.
func (s *Sponge) Pad(startRound int) {
	if s.count == 0 {
		return
	}
	s.xorBlock(s.count, []byte{padByte})
	Permute(&s.State, startRound)
	s.count = 0
}

// PadAlways finalizes the current rate block by XORing in the padding byte and permuting once, then resets the
// block counter to zero — unlike Pad, it does so even when the block is already empty (count == 0). It is used by
// constructions whose absorption procedure pads every segment unconditionally rather than skipping the padding
// block on alignment, such as Ascon-80pq-SIV's associated-data and message phases.
func (s *Sponge) PadAlways(startRound int) {
	s.xorBlock(s.count, []byte{padByte})
	Permute(&s.State, startRound)
	s.count = 0
}

// Finish transitions the sponge from absorb to squeeze mode: it XORs the padding byte into the current rate block
// (even when that block is empty), permutes once with finalRound, and resets the block counter. It is an error to
// call Finish more than once.
func (s *Sponge) Finish(finalRound int) {
	if s.mode == modeSqueeze {
		panic("ascon: duplicate squeeze transition")
	}
	s.PadAlways(finalRound)
	s.mode = modeSqueeze
	s.count = 0
}

// Squeeze produces len(out) bytes from the sponge, permuting with startRound between rate blocks. Squeeze implicitly
// transitions the sponge to squeeze mode on first use, as if Finish had been called.
func (s *Sponge) Squeeze(out []byte, startRound int) {
	if s.mode == modeAbsorb {
		s.Finish(startRound)
	}

	for len(out) > 0 {
		if s.count == Rate {
			Permute(&s.State, startRound)
			s.count = 0
		}

		var block [8]byte
		be64enc(block[:], s.State[0])
		n := copy(out, block[s.count:])
		s.count += n
		out = out[n:]
	}
}

// ClearRate destroys backtracking information by padding any pending block, zeroing the rate word, and permuting
// once more. It is used by constructions that must prevent recovery of previously squeezed output from the current
// state.
func (s *Sponge) ClearRate(startRound int) {
	s.Pad(startRound)
	s.State[0] = 0
	Permute(&s.State, startRound)
}

// Clone returns an independent copy of s; mutating the result does not affect s.
func (s *Sponge) Clone() *Sponge {
	c := *s
	return &c
}

// Free scrubs s's state, destroying any secret material it held. A freed Sponge must not be reused.
func (s *Sponge) Free() {
	s.State.Clear()
	s.count = 0
	s.mode = modeAbsorb
}
