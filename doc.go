// Package ascon implements the core of the Ascon lightweight cryptographic permutation family, as standardized by
// NIST in SP 800-232.
//
// It provides the 320-bit Ascon permutation (both a plain implementation and a first-order-masked variant for
// side-channel resistance), the Ascon-Xof/Ascon-XofA extendable-output sponge construction, and, in the siv
// subpackage, the Ascon-80pq-SIV authenticated encryption mode. Higher-level constructions such as standard AEAD,
// PRF, MAC, and password-hashing modes are deliberately out of scope: they follow mechanically from the primitives
// exposed here and belong in a surrounding package, not in the core.
//
// Ascon's permutation and sponge operations are total: there is no failure mode short of caller misuse, which is
// mostly reported via panics rather than errors. The exceptions are NewXOFFixed, which returns ErrOutlenTooLarge for
// an output length it cannot encode, and the siv subpackage, whose New rejects a wrong-size key and whose Open
// returns an error when authentication fails.
//
// [Ascon]: https://ascon.iaik.tugraz.at
// [NIST SP 800-232]: https://csrc.nist.gov/pubs/sp/800/232/final
package ascon
