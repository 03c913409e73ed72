// byte manipulation

package ascon

import "encoding/binary"

func be64dec(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

func be64enc(b []byte, x uint64) {
	binary.BigEndian.PutUint64(b, x)
}
